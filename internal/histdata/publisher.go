// Package histdata archives every update flowing through the desk:
// positions, risk, executions, streamed quotes, display snapshots and
// completed inquiries.
package histdata

import "main/internal/schema"

// Publisher receives each archived update. Implementations append to
// output logs or persist rows; publish errors surface through the
// dispatch chain of the event that triggered them.
type Publisher interface {
	PublishPosition(p schema.Position) error
	PublishRisk(v schema.PV01) error
	PublishExecution(o schema.ExecutionOrder) error
	PublishStream(ps schema.PriceStream) error
	PublishGUIQuote(q schema.GUIQuote) error
	PublishInquiry(inq schema.Inquiry) error
	Close() error
}

// MultiPublisher fans each update out to several publishers.
type MultiPublisher []Publisher

// PublishPosition publishes to every member.
func (m MultiPublisher) PublishPosition(p schema.Position) error {
	for _, pub := range m {
		if err := pub.PublishPosition(p); err != nil {
			return err
		}
	}
	return nil
}

// PublishRisk publishes to every member.
func (m MultiPublisher) PublishRisk(v schema.PV01) error {
	for _, pub := range m {
		if err := pub.PublishRisk(v); err != nil {
			return err
		}
	}
	return nil
}

// PublishExecution publishes to every member.
func (m MultiPublisher) PublishExecution(o schema.ExecutionOrder) error {
	for _, pub := range m {
		if err := pub.PublishExecution(o); err != nil {
			return err
		}
	}
	return nil
}

// PublishStream publishes to every member.
func (m MultiPublisher) PublishStream(ps schema.PriceStream) error {
	for _, pub := range m {
		if err := pub.PublishStream(ps); err != nil {
			return err
		}
	}
	return nil
}

// PublishGUIQuote publishes to every member.
func (m MultiPublisher) PublishGUIQuote(q schema.GUIQuote) error {
	for _, pub := range m {
		if err := pub.PublishGUIQuote(q); err != nil {
			return err
		}
	}
	return nil
}

// PublishInquiry publishes to every member.
func (m MultiPublisher) PublishInquiry(inq schema.Inquiry) error {
	for _, pub := range m {
		if err := pub.PublishInquiry(inq); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every member, returning the first error.
func (m MultiPublisher) Close() error {
	var first error
	for _, pub := range m {
		if err := pub.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
