package services

import "github.com/surajjj07/Ecommerce-website/models"

// statusTransitions is the directed transition graph over order status.
// No back-edges: cancelled and delivered orders stay that way, and an
// order cannot be delivered without being shipped first.
var statusTransitions = map[string][]string{
	models.StatusPending:    {models.StatusProcessing, models.StatusCancelled},
	models.StatusProcessing: {models.StatusShipped, models.StatusCancelled},
	models.StatusShipped:    {models.StatusDelivered},
	models.StatusDelivered:  {},
	models.StatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to
// another. Re-applying the current status is always allowed so a
// retrying admin client stays idempotent.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
