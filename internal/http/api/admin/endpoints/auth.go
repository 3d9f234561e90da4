package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masjidtech/minaret/internal/db"
	"github.com/masjidtech/minaret/internal/http/api"
	"github.com/masjidtech/minaret/internal/http/api/admin/packets"
	"github.com/masjidtech/minaret/internal/http/middleware"
	"github.com/masjidtech/minaret/internal/model"
)

// AuthPublicModule mounts the signin endpoint. The admin account is
// seeded at boot from the environment; there is no open signup.
func AuthPublicModule(jwtSecret string, store db.Store) api.Module {
	ctl := &AuthController{jwtSecret: jwtSecret, store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/signin", ctl.signin)
	})
}

// AuthSessionModule mounts profile endpoints (JWT required).
func AuthSessionModule(store db.Store) api.Module {
	ctl := &AuthController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/current_profile", ctl.getCurrentProfile)
	})
}

type AuthController struct {
	jwtSecret string
	store     db.Store
}

// POST /api/public/auth/signin
func (a *AuthController) signin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SigninRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	foundUser, err := a.store.GetUserByEmail(request.Email)
	if err != nil || foundUser == nil || !middleware.CheckPassword(foundUser.HashedPassword, request.Password) {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	}

	token, err := middleware.GenerateJWT(foundUser.ID, a.jwtSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return gin.H{"token": token}, nil
}

// GET /api/admin/auth/current_profile
func (a *AuthController) getCurrentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return packets.ProfileResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}, nil
}
