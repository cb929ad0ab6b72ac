package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

// NewInventory classifies the cart item. Items containing marker
// (case-insensitive) are reported out of stock.
func NewInventory(marker string) Func {
	marker = strings.ToLower(strings.TrimSpace(marker))
	return Func{
		Step: statex.StepInventory,
		Fn: func(ctx context.Context, rec *statex.Record) (statex.Update, error) {
			item := strings.TrimSpace(rec.CartItem)
			log.Debug().Str("worker", "inventory").Str("item", item).Msg("checking stock database")

			if marker != "" && strings.Contains(strings.ToLower(item), marker) {
				log.Info().Str("worker", "inventory").Str("item", item).Msg("item is out of stock")
				return statex.Update{
					ItemStatus: statex.ItemStatusOutOfStock,
					Messages:   []string{statex.SystemReply(fmt.Sprintf("'%s' is out of stock.", item))},
				}, nil
			}

			log.Info().Str("worker", "inventory").Str("item", item).Msg("item is available")
			return statex.Update{
				ItemStatus: statex.ItemStatusInStock,
				Messages:   []string{statex.SystemReply(fmt.Sprintf("'%s' is in stock. Reply yes to place the order.", item))},
			}, nil
		},
	}
}

func NewRecommendation(alternative string) Func {
	reply := statex.SystemReply(fmt.Sprintf("Found alternative '%s' (Same Style).", alternative))
	return Func{
		Step: statex.StepRecommendation,
		Fn: func(ctx context.Context, rec *statex.Record) (statex.Update, error) {
			log.Info().Str("worker", "recommendation").Str("failed_item", rec.CartItem).Msg("analyzing style preferences")
			return statex.Update{
				Messages:    []string{reply},
				Recommended: true,
			}, nil
		},
	}
}

func NewPayment() Func {
	return Func{
		Step: statex.StepPayment,
		Fn: func(ctx context.Context, rec *statex.Record) (statex.Update, error) {
			log.Info().Str("worker", "payment").Str("user_id", rec.UserID).Msg("contacting payment gateway")
			return statex.Update{Messages: []string{statex.SystemReply("Payment Authorized.")}}, nil
		},
	}
}

func NewFulfillment(trackingID string) Func {
	reply := statex.SystemReply("Order Shipped. Tracking ID: " + trackingID)
	return Func{
		Step: statex.StepFulfillment,
		Fn: func(ctx context.Context, rec *statex.Record) (statex.Update, error) {
			log.Info().Str("worker", "fulfillment").Str("channel", rec.Channel).Msg("allocating logistics")
			return statex.Update{Messages: []string{reply}}, nil
		},
	}
}
