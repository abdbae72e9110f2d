package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

// GenerateBills returns one bill per day offset 0..plan.Days-1 counting back
// from now, newest first. Category and amount come from rng.
func GenerateBills(now time.Time, rng *rand.Rand, plan models.Plan) []models.BillRecord {
	bills := make([]models.BillRecord, 0, plan.Days)
	span := plan.MaxAmount - plan.MinAmount + 1
	for i := 0; i < plan.Days; i++ {
		due := now.AddDate(0, 0, -i)
		category := plan.Categories[rng.IntN(len(plan.Categories))]
		amount := plan.MinAmount + rng.IntN(span)
		bills = append(bills, models.NewBillRecord(category, amount, due))
	}
	return bills
}

// Seed submits the generated bills one at a time. Individual write failures
// are logged and counted, never returned; the only error is a missing token.
func (s serviceImpl) Seed(ctx context.Context, sess Session) (SeedResult, error) {
	if err := requireToken(sess); err != nil {
		return SeedResult{}, err
	}
	bills := GenerateBills(s.clock(), s.rng, s.plan)
	slog.Info("adding test bills", "count", len(bills))

	var res SeedResult
	for _, bill := range bills {
		res.Attempted++
		resp, err := s.gw.AddBill(ctx, sess.Token, bill)
		switch {
		case err != nil:
			slog.Warn("request to add bill failed", "due_date", bill.DueDate, "error", err)
			res.Failures = append(res.Failures, fmt.Sprintf("Request to add bill due %s failed: %v", bill.DueDate, err))
		case !isSuccess(resp.StatusCode):
			slog.Warn("failed to add bill", "due_date", bill.DueDate, "status", resp.StatusCode, "body", snippet(resp.Body))
			res.Failures = append(res.Failures, fmt.Sprintf("Failed to add bill due %s (status %d): %s", bill.DueDate, resp.StatusCode, snippet(resp.Body)))
		default:
			res.Created++
		}
	}
	slog.Info("seeding finished", "attempted", res.Attempted, "created", res.Created, "failed", len(res.Failures))
	return res, nil
}
