package adminapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stockpilehq/stockpile/internal/inventory"
)

// failMessage answers with a plain {"message": ...} body.
func failMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"message": message})
}

// failFields answers a validation failure with field-level messages.
func failFields(c echo.Context, fields []inventory.FieldError) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": fields})
}

// failError surfaces a storage failure with its raw message.
func failError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// failService maps a catalog service error onto the response contract.
func failService(c echo.Context, err error) error {
	switch {
	case inventory.IsValidation(err):
		return failFields(c, inventory.AsValidation(err).Fields)
	case inventory.IsConflict(err):
		return failMessage(c, http.StatusConflict, "Product name already exists.")
	case inventory.IsNotFound(err):
		return failMessage(c, http.StatusNotFound, "Product not found")
	default:
		return failError(c, err)
	}
}

// validationFields translates validator errors into the field-level
// message shape of the API.
func validationFields(err error) []inventory.FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []inventory.FieldError{{Field: "body", Message: "Invalid request body."}}
	}
	fields := make([]inventory.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		message := "Invalid value."
		switch field {
		case "name":
			message = "Name is required."
		case "stock":
			message = "Stock must be a non-negative integer."
		}
		fields = append(fields, inventory.FieldError{Field: field, Message: message})
	}
	return fields
}
