package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/gangamma-trust/registration-portal/internal/logger"
	"github.com/gangamma-trust/registration-portal/internal/services"
	"github.com/gangamma-trust/registration-portal/internal/types"
)

// Notice is a single message rendered above the form. Success notices
// travel through the session flash (one-shot, consumed on render); error
// notices are rendered directly on the failing response.
type Notice struct {
	Category string
	Message  string
}

type RegistrationHandler struct {
	log     *logger.Logger
	service services.RegistrationService
}

func NewRegistrationHandler(log *logger.Logger, service services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		log:     log.With("handler", "RegistrationHandler"),
		service: service,
	}
}

func (rh *RegistrationHandler) Show(c *gin.Context) {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if err := session.Save(); err != nil {
		rh.log.Warn("Could not save session after consuming flashes", "error", err)
	}

	notices := make([]Notice, 0, len(flashes))
	for _, f := range flashes {
		if msg, ok := f.(string); ok {
			notices = append(notices, Notice{Category: "success", Message: msg})
		}
	}
	rh.render(c, http.StatusOK, notices)
}

func (rh *RegistrationHandler) Submit(c *gin.Context) {
	sub := services.Submission{
		Name:     c.PostForm("name"),
		Mobile:   c.PostForm("mobile"),
		Email:    c.PostForm("email"),
		Amount:   c.PostForm("amount"),
		Date:     c.PostForm("date"),
		Address:  c.PostForm("address"),
		DOB:      c.PostForm("dob"),
		Feedback: c.PostForm("feedback"),
	}

	_, err := rh.service.Submit(c.Request.Context(), sub)
	if err == nil {
		session := sessions.Default(c)
		session.AddFlash("Successfully Saved!")
		if err := session.Save(); err != nil {
			rh.log.Warn("Could not save session flash", "error", err)
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	var message string
	switch {
	case errors.Is(err, services.ErrDuplicateMobile):
		message = "Mobile number already registered!"
	case errors.Is(err, services.ErrDuplicateEmail):
		message = "Email address already registered!"
	case errors.Is(err, services.ErrInvalidInput):
		message = err.Error()
	case errors.Is(err, services.ErrStoreUnavailable):
		message = "The service is temporarily unavailable. Please try again later."
	default:
		message = "An error occurred while saving your data. Please check your inputs."
	}
	rh.render(c, http.StatusOK, []Notice{{Category: "error", Message: message}})
}

func (rh *RegistrationHandler) render(c *gin.Context, status int, notices []Notice) {
	title := "Welcome to Gangamma Trust"
	if rh.service.Variant() == types.VariantMembership {
		title = "RKSO FORM"
	}
	c.HTML(status, "form.html", gin.H{
		"Title":   title,
		"Variant": string(rh.service.Variant()),
		"Notices": notices,
	})
}
