package gateway

import (
	"context"

	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

//go:generate mockgen -destination=mock/mock_gateway.go -package=mock github.com/tbeaudouin05/finsec-harness/api/services/finsec/gateway FinsecGateway

// Response is the raw outcome of one call to the API under test.
// Status policy is decided by the app layer, not here.
type Response struct {
	StatusCode int
	Body       []byte
}

// FinsecGateway abstracts the HTTP endpoints exercised by the harness.
// A non-nil error means the request never produced a response (network
// failure, timeout); any HTTP status is returned in Response instead.
type FinsecGateway interface {
	Login(ctx context.Context, creds models.Credentials) (Response, error)
	AddBill(ctx context.Context, token models.AccessToken, bill models.BillRecord) (Response, error)
	SpendingAnalytics(ctx context.Context, token models.AccessToken, q models.AnalyticsQuery) (Response, error)
}
