package schema

// InquiryState tracks the lifecycle of a customer inquiry.
type InquiryState uint16

const (
	InquiryStateUnknown InquiryState = iota
	InquiryStateReceived
	InquiryStateQuoted
	InquiryStateDone
	InquiryStateRejected
	InquiryStateCustomerRejected
)

// String returns the feed representation of the state.
func (s InquiryState) String() string {
	switch s {
	case InquiryStateReceived:
		return "RECEIVED"
	case InquiryStateQuoted:
		return "QUOTED"
	case InquiryStateDone:
		return "DONE"
	case InquiryStateRejected:
		return "REJECTED"
	case InquiryStateCustomerRejected:
		return "CUSTOMER_REJECTED"
	default:
		return "UNKNOWN"
	}
}

// InquiryStateFromString parses a feed state token.
func InquiryStateFromString(s string) (InquiryState, bool) {
	switch s {
	case "RECEIVED":
		return InquiryStateReceived, true
	case "QUOTED":
		return InquiryStateQuoted, true
	case "DONE":
		return InquiryStateDone, true
	case "REJECTED":
		return InquiryStateRejected, true
	case "CUSTOMER_REJECTED":
		return InquiryStateCustomerRejected, true
	default:
		return InquiryStateUnknown, false
	}
}

// Inquiry is a customer inquiry. It is keyed by InquiryID, which is
// globally unique and not a product identifier.
type Inquiry struct {
	InquiryID string
	Bond      Bond
	Side      Side
	Quantity  int64
	Price     Price
	State     InquiryState
}
