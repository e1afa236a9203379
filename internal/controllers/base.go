package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"backoffice/pkg/contextkeys"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/types"
)

// currentUserID reads the authenticated user id placed into the request
// context by the auth middleware.
func currentUserID(c echo.Context) (uint64, error) {
	userID, ok := c.Request().Context().Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUnauthorized
	}
	return userID, nil
}

func parseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewBadRequestError("invalid " + name + " parameter")
	}
	return id, nil
}

func parseFilter(c echo.Context) types.Filter {
	filter := types.Filter{
		Search: c.QueryParam("search"),
		Filter: map[string]interface{}{},
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter.Page = page
	filter.Limit = limit
	filter.Offset = (page - 1) * limit
	filter.WithPagination = true
	return filter
}
