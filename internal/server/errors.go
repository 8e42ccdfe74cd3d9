package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authdomain "github.com/vetcita/vetcita/internal/auth/domain"
	"github.com/vetcita/vetcita/internal/authorization"
	businesshoursdomain "github.com/vetcita/vetcita/internal/businesshours/domain"
	memberdomain "github.com/vetcita/vetcita/internal/member/domain"
	petdomain "github.com/vetcita/vetcita/internal/pet/domain"
	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
	subscriptiondomain "github.com/vetcita/vetcita/internal/subscription/domain"
	superadmindomain "github.com/vetcita/vetcita/internal/superadmin/domain"
	tenantdomain "github.com/vetcita/vetcita/internal/tenant/domain"
	whatsappdomain "github.com/vetcita/vetcita/internal/whatsapp/domain"
)

// genericInternalMessage is the only text internal failures ever surface.
const genericInternalMessage = "Ocurrió un error inesperado. Por favor intenta de nuevo."

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "La solicitud no es válida")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: genericInternalMessage,
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "La solicitud no es válida",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked),
		errors.Is(err, authdomain.ErrSessionNotFound):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "No autorizado",
		}
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{
			Type:    "invalid_credentials",
			Message: "Correo o contraseña incorrectos",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "No tienes permiso para realizar esta acción",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, memberdomain.ErrDuplicateUser):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "El correo ya está registrado",
		}
	case errors.Is(err, tenantdomain.ErrSubdomainInUse):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "El subdominio ya está en uso",
		}
	case errors.Is(err, superadmindomain.ErrAlreadyAdmin):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "El usuario ya es super administrador",
		}
	default:
	}

	// Business not-found and rule violations report as descriptive 400s:
	// mutation endpoints keep a uniform "operation failed, here's why"
	// contract instead of mixing in 404s.
	if code, message, ok := businessErrorMessage(err); ok {
		return http.StatusBadRequest, errorPayload{
			Type:    code,
			Message: message,
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: genericInternalMessage,
	}
}

func businessErrorMessage(err error) (string, string, bool) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request", "La solicitud no es válida", true
	case errors.Is(err, subscriptiondomain.ErrInvalidUpgrade):
		return "invalid_upgrade", "Solo puedes cambiar a un plan superior", true
	case errors.Is(err, subscriptiondomain.ErrUnknownPlan),
		errors.Is(err, plandomain.ErrUnknownPlan):
		return "unknown_plan", "El plan seleccionado no existe", true
	case errors.Is(err, subscriptiondomain.ErrInvalidInterval):
		return "invalid_interval", "El intervalo de facturación no es válido", true
	case errors.Is(err, subscriptiondomain.ErrNotFound):
		return "subscription_not_found", "La clínica no tiene una suscripción", true
	case errors.Is(err, tenantdomain.ErrNotFound):
		return "tenant_not_found", "La clínica no existe", true
	case errors.Is(err, tenantdomain.ErrInvalidName):
		return "invalid_name", "El nombre no es válido", true
	case errors.Is(err, tenantdomain.ErrInvalidSubdomain):
		return "invalid_subdomain", "El subdominio no es válido", true
	case errors.Is(err, petdomain.ErrNotFound):
		return "pet_not_found", "La mascota no existe", true
	case errors.Is(err, petdomain.ErrOwnerNotFound):
		return "owner_not_found", "El propietario no existe", true
	case errors.Is(err, petdomain.ErrInvalidName):
		return "invalid_name", "El nombre no es válido", true
	case errors.Is(err, petdomain.ErrInvalidSpecies):
		return "invalid_species", "La especie no es válida", true
	case errors.Is(err, petdomain.ErrInvalidID):
		return "invalid_id", "El identificador no es válido", true
	case errors.Is(err, memberdomain.ErrInvalidRole):
		return "invalid_role", "El rol no es válido", true
	case errors.Is(err, whatsappdomain.ErrInvalidPhone):
		return "invalid_phone", "El número de teléfono no es válido", true
	case errors.Is(err, whatsappdomain.ErrEmptyBody):
		return "empty_body", "El mensaje no puede estar vacío", true
	case errors.Is(err, whatsappdomain.ErrInvalidPageToken):
		return "invalid_page_token", "El token de página no es válido", true
	case errors.Is(err, businesshoursdomain.ErrInvalidTime):
		return "invalid_time", "El horario no es válido", true
	case errors.Is(err, businesshoursdomain.ErrInvalidDay):
		return "invalid_day", "El día de la semana no es válido", true
	case errors.Is(err, businesshoursdomain.ErrNotFound):
		return "business_hours_not_found", "No hay horarios configurados", true
	case errors.Is(err, superadmindomain.ErrSelfRemoval):
		return "self_removal", "No puedes eliminar tu propio acceso de super administrador", true
	case errors.Is(err, superadmindomain.ErrMissingIdentifier):
		return "missing_identifier", "Debes indicar un usuario o un correo", true
	case errors.Is(err, superadmindomain.ErrUserNotFound):
		return "user_not_found", "El usuario no existe", true
	case errors.Is(err, superadmindomain.ErrNotAdmin):
		return "not_admin", "El usuario no es super administrador", true
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "not_found", "El registro no existe", true
	default:
		return "", "", false
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

// classifyErrorForLog feeds the request logger; internal codes are logged
// but never exposed to clients.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= 500:
		return "internal", err.Error()
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return "auth", payload.Type
	case status == http.StatusConflict:
		return "conflict", payload.Type
	default:
		return "validation", payload.Type
	}
}
