package middleware

import (
	"net/http"
	"testing"

	"hvac-office-api/internal/model"
)

func TestPolicies(t *testing.T) {
	const (
		get  = http.MethodGet
		post = http.MethodPost
		del  = http.MethodDelete
	)

	tests := []struct {
		name   string
		policy Policy
		role   model.Role
		method string
		want   bool
	}{
		{"admin-only admits admin", AdminOnly, model.RoleAdmin, del, true},
		{"admin-only rejects secretary", AdminOnly, model.RoleSecretary, get, false},
		{"admin-only rejects technician", AdminOnly, model.RoleTechnician, get, false},

		{"admin+tech-ro: tech reads", AdminOrTechnicianReadOnly, model.RoleTechnician, get, true},
		{"admin+tech-ro: tech cannot write", AdminOrTechnicianReadOnly, model.RoleTechnician, post, false},
		{"admin+tech-ro: secretary rejected", AdminOrTechnicianReadOnly, model.RoleSecretary, get, false},
		{"admin+tech-ro: admin writes", AdminOrTechnicianReadOnly, model.RoleAdmin, del, true},

		{"admin+tech-cro: tech creates", AdminOrTechnicianCreateOrReadOnly, model.RoleTechnician, post, true},
		{"admin+tech-cro: tech cannot delete", AdminOrTechnicianCreateOrReadOnly, model.RoleTechnician, del, false},

		{"full matrix: secretary writes", AdminOrSecretaryOrTechnicianReadOnly, model.RoleSecretary, post, true},
		{"full matrix: tech reads", AdminOrSecretaryOrTechnicianReadOnly, model.RoleTechnician, get, true},
		{"full matrix: tech cannot write", AdminOrSecretaryOrTechnicianReadOnly, model.RoleTechnician, post, false},

		{"attachments: tech uploads", AdminOrSecretaryOrTechnicianCreateOrReadOnly, model.RoleTechnician, post, true},
		{"attachments: tech cannot delete", AdminOrSecretaryOrTechnicianCreateOrReadOnly, model.RoleTechnician, del, false},
		{"attachments: secretary deletes", AdminOrSecretaryOrTechnicianCreateOrReadOnly, model.RoleSecretary, del, true},

		{"unknown role always rejected", AdminOrSecretaryOrTechnicianReadOnly, model.RoleNone, get, false},
		{"authenticated admits anyone", Authenticated, model.RoleNone, del, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy(tt.role, tt.method); got != tt.want {
				t.Errorf("policy(%q, %s) = %v, want %v", tt.role, tt.method, got, tt.want)
			}
		})
	}
}
