package events

// Topics emitted by the pricing and cart engine.
const (
	// TopicQuotePriced fires when a configuration has been priced into a line item.
	TopicQuotePriced = "quote.priced"
	// TopicCartCheckedOut fires when a cart has been turned into an order snapshot.
	TopicCartCheckedOut = "cart.checked_out"
)
