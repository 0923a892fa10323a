package histdata

import (
	"main/internal/bus"
	"main/internal/schema"
)

// Sources are the services whose updates get archived.
type Sources struct {
	Position interface {
		Subscribe(bus.Listener[schema.Position])
	}
	Risk interface {
		Subscribe(bus.Listener[schema.PV01])
	}
	Execution interface {
		Subscribe(bus.Listener[schema.ExecutionOrder])
	}
	Stream interface {
		Subscribe(bus.Listener[schema.PriceStream])
	}
	GUI interface {
		Subscribe(bus.Listener[schema.GUIQuote])
	}
	Inquiry interface {
		Subscribe(bus.Listener[schema.Inquiry])
	}
}

// Attach subscribes the publisher to every source. Inquiries are
// archived once quoted, and the archived line carries the DONE state.
func Attach(pub Publisher, src Sources) {
	src.Position.Subscribe(bus.ListenerFunc[schema.Position](pub.PublishPosition))
	src.Risk.Subscribe(bus.ListenerFunc[schema.PV01](pub.PublishRisk))
	src.Execution.Subscribe(bus.ListenerFunc[schema.ExecutionOrder](pub.PublishExecution))
	src.Stream.Subscribe(bus.ListenerFunc[schema.PriceStream](pub.PublishStream))
	src.GUI.Subscribe(bus.ListenerFunc[schema.GUIQuote](pub.PublishGUIQuote))
	src.Inquiry.Subscribe(bus.ListenerFunc[schema.Inquiry](func(inq schema.Inquiry) error {
		if inq.State != schema.InquiryStateQuoted {
			return nil
		}
		inq.State = schema.InquiryStateDone
		return pub.PublishInquiry(inq)
	}))
}
