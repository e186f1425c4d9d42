package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/account"
)

type accountApi struct {
	svc      account.ServiceInterface
	auth     *Authenticator
	validate *validator.Validate
}

func registerAccountAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	auth *Authenticator,
	svc account.ServiceInterface,
	validate *validator.Validate,
) {
	api := accountApi{
		svc:      svc,
		auth:     auth,
		validate: validate,
	}

	ag := g.Group("/accounts")

	// un-authed endpoints
	ag.POST("/register", api.register)
	ag.POST("/login", api.login)

	// authed endpoints
	sg := ag.Group("", jwt)
	sg.POST("/logout", api.logout)
	sg.GET("/session", api.session)

	// student profile endpoints
	pg := g.Group("/students/:id", jwt, selfOrTeacherMiddleware())
	pg.GET("/profile", api.retrieveProfile)
	pg.PUT("/profile", api.updateProfile)
}

// Handlers

func (api *accountApi) register(ctx echo.Context) error {
	var data account.NewAccount
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAccount")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	acct, err := api.svc.Register(data)
	if err != nil {
		return errors.Wrap(err, "registering account")
	}
	return ctx.JSON(http.StatusCreated, newAccountResponse(acct))
}

func (api *accountApi) login(ctx echo.Context) error {
	var data account.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	acct, err := api.svc.Login(data)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	token, err := api.auth.GenerateToken(api.auth.GetAccountClaims(acct))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Account: newAccountResponse(acct)})
}

func (api *accountApi) logout(ctx echo.Context) error {
	if err := api.svc.Logout(); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "logged out"})
}

func (api *accountApi) session(ctx echo.Context) error {
	acct, err := api.svc.Current()
	if err != nil {
		return errors.Wrap(err, "loading session")
	}
	if acct == nil {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, newAccountResponse(*acct))
}

func (api *accountApi) retrieveProfile(ctx echo.Context) error {
	profile, err := api.svc.GetStudentProfile(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "loading student profile")
	}
	if profile == nil {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, profile)
}

func (api *accountApi) updateProfile(ctx echo.Context) error {
	var profile account.StudentProfile
	if err := ctx.Bind(&profile); err != nil {
		return errors.Wrap(err, "binding to StudentProfile")
	}

	// the profile is replaced wholesale; its shape is the caller's call
	if err := api.svc.UpdateStudentProfile(ctx.Param("id"), profile); err != nil {
		return errors.Wrap(err, "updating student profile")
	}
	return ctx.JSON(http.StatusOK, profile)
}
