package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

// Verify checks every planned period, attempting all of them regardless of
// earlier failures.
func (s serviceImpl) Verify(ctx context.Context, sess Session) ([]PeriodVerdict, error) {
	if err := requireToken(sess); err != nil {
		return nil, err
	}
	verdicts := make([]PeriodVerdict, 0, len(s.plan.Periods))
	for _, period := range s.plan.Periods {
		verdicts = append(verdicts, s.verifyPeriod(ctx, sess, period))
	}
	return verdicts, nil
}

func (s serviceImpl) verifyPeriod(ctx context.Context, sess Session, period models.Period) PeriodVerdict {
	v := PeriodVerdict{Period: period}
	resp, err := s.gw.SpendingAnalytics(ctx, sess.Token, models.AnalyticsQuery{Period: period})
	if err != nil {
		v.Message = fmt.Sprintf("Request for period '%s' failed: %v", period, err)
		slog.Error("analytics request failed", "period", period, "error", err)
		return v
	}
	v.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		v.Message = fmt.Sprintf("Period '%s' failed with status %d: %s", period, resp.StatusCode, snippet(resp.Body))
		slog.Error("analytics returned non-200", "period", period, "status", resp.StatusCode)
		return v
	}
	var parsed any
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		v.Message = fmt.Sprintf("Failed to decode JSON response for period '%s': %v", period, err)
		slog.Error("analytics body is not JSON", "period", period, "error", err)
		return v
	}
	v.OK = true
	slog.Info("analytics ok", "period", period, "status", resp.StatusCode)
	slog.Debug("analytics response", "period", period, "body", string(resp.Body))
	return v
}
