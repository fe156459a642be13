package v1

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventure-app/eventure-api/internal/api/handler/v1/response"
	"github.com/eventure-app/eventure-api/internal/api/middleware"
	"github.com/eventure-app/eventure-api/internal/domain"
)

// getUserFromContext resolves the authenticated actor. The role is
// loaded fresh so a deactivation or promotion takes effect on the next
// request, not at the next login.
func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, response.ErrUnauthorized("missing user context")
	}

	userID, ok := value.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized("malformed user context")
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		return domain.User{}, response.ErrUnauthorized("unknown user")
	}

	if user.Role == domain.RoleDeactivated {
		return domain.User{}, response.ErrPermissionDenied(fmt.Errorf("user %v is deactivated", user.ID))
	}

	return user, nil
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %v", name)
	}

	return uint(value), nil
}

func parseUintQueryArray(ctx *gin.Context, name string) ([]uint, error) {
	var ids []uint
	for _, raw := range ctx.QueryArray(name) {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %v", name)
		}
		ids = append(ids, uint(value))
	}

	return ids, nil
}
