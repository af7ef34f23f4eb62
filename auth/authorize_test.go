package auth_test

import (
	"net/http"
	"testing"

	"restaurant-service/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func identityWith(role auth.Role) *auth.Identity {
	return &auth.Identity{UserID: uuid.New(), Username: role.String(), Role: role}
}

func TestAuthorize_Matrix(t *testing.T) {
	manager := identityWith(auth.RoleManager)
	crew := identityWith(auth.RoleDeliveryCrew)
	customer := identityWith(auth.RoleCustomer)

	tests := []struct {
		name     string
		id       *auth.Identity
		action   auth.Action
		resource auth.Resource
		wantCode int // 0 means allowed
	}{
		{"anonymous reads menu", nil, auth.ActionRead, auth.ResourceMenu, 0},
		{"customer reads menu", customer, auth.ActionRead, auth.ResourceMenu, 0},
		{"anonymous writes menu", nil, auth.ActionWrite, auth.ResourceMenu, http.StatusUnauthorized},
		{"customer writes menu", customer, auth.ActionWrite, auth.ResourceMenu, http.StatusForbidden},
		{"crew writes menu", crew, auth.ActionWrite, auth.ResourceMenu, http.StatusForbidden},
		{"manager writes menu", manager, auth.ActionWrite, auth.ResourceMenu, 0},

		{"anonymous reads cart", nil, auth.ActionRead, auth.ResourceCart, http.StatusUnauthorized},
		{"customer reads cart", customer, auth.ActionRead, auth.ResourceCart, 0},
		{"customer writes cart", customer, auth.ActionWrite, auth.ResourceCart, 0},

		{"anonymous writes order", nil, auth.ActionWrite, auth.ResourceOrder, http.StatusUnauthorized},
		{"customer writes order", customer, auth.ActionWrite, auth.ResourceOrder, 0},
		{"crew reads order", crew, auth.ActionRead, auth.ResourceOrder, 0},

		{"anonymous reads roster", nil, auth.ActionRead, auth.ResourceRoster, http.StatusUnauthorized},
		{"customer reads roster", customer, auth.ActionRead, auth.ResourceRoster, http.StatusForbidden},
		{"crew writes roster", crew, auth.ActionWrite, auth.ResourceRoster, http.StatusForbidden},
		{"manager reads roster", manager, auth.ActionRead, auth.ResourceRoster, 0},
		{"manager writes roster", manager, auth.ActionWrite, auth.ResourceRoster, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.Authorize(tt.id, tt.action, tt.resource)
			if tt.wantCode == 0 {
				assert.Nil(t, err)
				return
			}
			assert.NotNil(t, err)
			assert.Equal(t, tt.wantCode, err.Code)
		})
	}
}

func TestIdentity_RoleHelpersNilSafe(t *testing.T) {
	var id *auth.Identity
	assert.False(t, id.IsManager())
	assert.False(t, id.IsDeliveryCrew())

	assert.True(t, identityWith(auth.RoleManager).IsManager())
	assert.True(t, identityWith(auth.RoleDeliveryCrew).IsDeliveryCrew())
	assert.False(t, identityWith(auth.RoleCustomer).IsManager())
}
