package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/booking"
)

// statusFor maps a failure kind to its HTTP status.
func statusFor(k booking.Kind) int {
    switch k {
    case booking.KindValidation:
        return http.StatusBadRequest
    case booking.KindNotFound:
        return http.StatusNotFound
    case booking.KindAvailabilityConflict:
        return http.StatusConflict
    default:
        return http.StatusInternalServerError
    }
}

// fail renders err as {"error": kind, "message": msg}.  Availability
// conflicts also carry the artist's window.
func fail(c echo.Context, err error) error {
    kind := booking.KindOf(err)
    body := echo.Map{"error": string(kind), "message": booking.MessageOf(err)}
    var be *booking.Error
    if errors.As(err, &be) && be.Window != nil {
        body["available_from"] = be.Window.From.Format(booking.StorageLayout)
        body["available_to"] = be.Window.To.Format(booking.StorageLayout)
    }
    return c.JSON(statusFor(kind), body)
}

// badRequest renders a validation failure with msg.
func badRequest(c echo.Context, msg string) error {
    return fail(c, booking.Validationf("%s", msg))
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    return id, err == nil && id > 0
}
