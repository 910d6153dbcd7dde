package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventForRoute(t *testing.T) {
	tests := []struct {
		method  string
		path    string
		want    string
		tracked bool
	}{
		{http.MethodPost, "/api/v1/students/:studentID/payments", "payment_applied", true},
		{http.MethodPost, "/api/v1/classes/:classID/fee-structures", "fee_structure_created", true},
		{http.MethodDelete, "/api/v1/fee-structures/:feeID", "fee_structure_deleted", true},
		{http.MethodPut, "/api/v1/other/:otherID", "put_api_v1_other_otherID", true},
		{http.MethodGet, "/api/v1/students/:studentID/fees", "", false},
		{http.MethodPost, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got, ok := EventForRoute(tt.method, tt.path)
			assert.Equal(t, tt.tracked, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLedgerPropertyName(t *testing.T) {
	assert.Equal(t, "student_id", ledgerPropertyName("studentID"))
	assert.Equal(t, "fee_id", ledgerPropertyName("feeID"))
	assert.Equal(t, "class_id", ledgerPropertyName("classID"))
}
