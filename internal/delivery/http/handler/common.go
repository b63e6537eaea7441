package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/chaosdating/chaos-dating/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const siteTitle = "Chaos Dating"

// pageData is the base template context: site title, page title and the
// logged-in username when there is one.
func pageData(c *gin.Context, title string) gin.H {
	data := gin.H{"Site": siteTitle, "Title": title, "Errors": map[string]string{}}
	if username, ok := c.Get("username"); ok {
		data["Username"] = username
	}
	return data
}

// fieldAliases maps struct field names to the form field names templates
// key their error messages by.
var fieldAliases = map[string]string{
	"wishids":         "wishes",
	"minage":          "min_age",
	"maxage":          "max_age",
	"sortby":          "sort_by",
	"sortdir":         "sort_dir",
	"currentpassword": "current_password",
	"newpassword1":    "new_password1",
	"newpassword2":    "new_password2",
}

// formErrors flattens a binding error into per-field messages. Anything
// that is not a validator error lands under the form-wide "form" key.
func formErrors(err error) map[string]string {
	msgs := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		msgs["form"] = "The submitted values could not be processed."
		return msgs
	}
	for _, fe := range verrs {
		key := strings.ToLower(fe.Field())
		if alias, ok := fieldAliases[key]; ok {
			key = alias
		}
		msgs[key] = fieldMessage(fe)
	}
	return msgs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Enter at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Enter a value of at least %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Enter at most %s characters.", fe.Param())
		}
		return fmt.Sprintf("Enter a value of at most %s.", fe.Param())
	case "eqfield":
		return "The two values do not match."
	case "alphanum":
		return "Only letters and digits are allowed."
	case "oneof":
		return "Choose one of the offered values."
	}
	return "Enter a valid value."
}

func setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
}

// safeNext returns the ?next= redirect target when it is a local path,
// and the fallback otherwise.
func safeNext(c *gin.Context, fallback string) string {
	next := c.Query("next")
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return fallback
}

func notFound(c *gin.Context) {
	data := pageData(c, "Not Found")
	c.HTML(http.StatusNotFound, "not_found", data)
}
