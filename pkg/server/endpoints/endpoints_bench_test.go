package endpoints

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/ciphermind/ciphermind/pkg/model"
)

func BenchmarkReadSecretEndpoint(b *testing.B) {
	ts := newTestServer(b)
	userToken, err := ts.tokens.Issue("bob", model.RoleUser)
	if err != nil {
		b.Fatal(err)
	}
	ts.vault.On("ReadSecret", mock.Anything, userToken, "db-password").Return("hunter2", nil)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r := httptest.NewRequest(http.MethodGet, "/secrets/db-password", nil)
		r.Header.Set("Authorization", "Bearer "+userToken)
		w := httptest.NewRecorder()
		ts.Router.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}
