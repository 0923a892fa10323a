// Package inquiry manages the customer inquiry lifecycle and the desk's
// fixed auto-quote response.
package inquiry

import (
	"main/internal/bus"
	"main/internal/schema"
)

// Service stores inquiries keyed by inquiry id.
type Service struct {
	store *bus.Store[schema.Inquiry]
	quote schema.Price
}

// NewService creates an inquiry service that answers every received
// inquiry with the given fixed quote.
func NewService(d *bus.Dispatcher, quote schema.Price) *Service {
	return &Service{
		store: bus.NewStore(d, func(i schema.Inquiry) string { return i.InquiryID }),
		quote: quote,
	}
}

// Ingest stores the inquiry and notifies subscribers. A RECEIVED
// inquiry is then immediately quoted: the fixed quote is applied, the
// state moves to QUOTED, and the quoted inquiry is published as a
// second update. Other inbound states are stored as-is.
func (s *Service) Ingest(inq schema.Inquiry) error {
	if err := s.store.Ingest(inq); err != nil {
		return err
	}
	if inq.State != schema.InquiryStateReceived {
		return nil
	}
	inq.Price = s.quote
	inq.State = schema.InquiryStateQuoted
	return s.store.Ingest(inq)
}

// SendQuote sets the price on a stored inquiry without changing its
// state and without notifying subscribers.
func (s *Service) SendQuote(id string, price schema.Price) error {
	inq, err := s.store.Get(id)
	if err != nil {
		return err
	}
	inq.Price = price
	s.store.Put(inq)
	return nil
}

// RejectInquiry moves a stored inquiry to REJECTED regardless of its
// current state, without notifying subscribers.
func (s *Service) RejectInquiry(id string) error {
	inq, err := s.store.Get(id)
	if err != nil {
		return err
	}
	inq.State = schema.InquiryStateRejected
	s.store.Put(inq)
	return nil
}

// Inquiry returns a stored inquiry by id.
func (s *Service) Inquiry(id string) (schema.Inquiry, error) {
	return s.store.Get(id)
}

// Subscribe registers a listener for inquiry updates.
func (s *Service) Subscribe(l bus.Listener[schema.Inquiry]) {
	s.store.Subscribe(l)
}
