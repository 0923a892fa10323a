package histdata

import (
	"time"

	"github.com/yanun0323/errors"

	"main/internal/schema"
	"main/pkg/conn"
)

// PositionRecord is one archived position snapshot.
type PositionRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Product   string `gorm:"index"`
	Book      string
	Quantity  int64
	Aggregate int64
	CreatedAt time.Time
}

// RiskRecord is one archived PV01 entry.
type RiskRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Product   string `gorm:"index"`
	PV01      string
	Quantity  int64
	CreatedAt time.Time
}

// ExecutionRecord is one archived execution leg.
type ExecutionRecord struct {
	ID              uint   `gorm:"primaryKey"`
	Product         string `gorm:"index"`
	OrderID         string `gorm:"index"`
	Side            string
	OrderType       string
	Price           string
	VisibleQuantity int64
	HiddenQuantity  int64
	ParentOrderID   string
	IsChild         bool
	CreatedAt       time.Time
}

// QuoteRecord is one archived streamed quote.
type QuoteRecord struct {
	ID         uint   `gorm:"primaryKey"`
	Product    string `gorm:"index"`
	Bid        string
	Offer      string
	CapturedAt int64
	CreatedAt  time.Time
}

// InquiryRecord is one archived inquiry update.
type InquiryRecord struct {
	ID        uint   `gorm:"primaryKey"`
	InquiryID string `gorm:"index"`
	Product   string
	Side      string
	Quantity  int64
	Price     string
	State     string
	CreatedAt time.Time
}

// PGPublisher archives updates into postgres tables.
type PGPublisher struct {
	client *conn.Client
}

// NewPGPublisher connects to postgres and migrates the record tables.
func NewPGPublisher(dsn string) (*PGPublisher, error) {
	client, err := conn.New(conn.Option{DSN: dsn})
	if err != nil {
		return nil, errors.Wrap(err, "connect history store")
	}
	if err := client.Migrate(
		&PositionRecord{}, &RiskRecord{}, &ExecutionRecord{},
		&QuoteRecord{}, &InquiryRecord{},
	); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "migrate history tables")
	}
	return &PGPublisher{client: client}, nil
}

// PublishPosition inserts one row per book plus the aggregate.
func (p *PGPublisher) PublishPosition(pos schema.Position) error {
	aggregate := pos.AggregateQuantity()
	rows := make([]PositionRecord, 0, len(pos.Books))
	for book, qty := range pos.Books {
		rows = append(rows, PositionRecord{
			Product:   pos.Bond.Tenor,
			Book:      book,
			Quantity:  qty,
			Aggregate: aggregate,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return p.client.DB().Create(&rows).Error
}

// PublishRisk inserts one risk row.
func (p *PGPublisher) PublishRisk(v schema.PV01) error {
	return p.client.DB().Create(&RiskRecord{
		Product:  v.Bond.Tenor,
		PV01:     v.Value.String(),
		Quantity: v.Quantity,
	}).Error
}

// PublishExecution inserts one execution row.
func (p *PGPublisher) PublishExecution(o schema.ExecutionOrder) error {
	return p.client.DB().Create(&ExecutionRecord{
		Product:         o.Bond.Tenor,
		OrderID:         o.OrderID,
		Side:            o.Side.String(),
		OrderType:       o.Type.String(),
		Price:           o.Price.String(),
		VisibleQuantity: o.VisibleQuantity,
		HiddenQuantity:  o.HiddenQuantity,
		ParentOrderID:   o.ParentOrderID,
		IsChild:         o.IsChildOrder,
	}).Error
}

// PublishStream inserts one quote row from the stream's top of book.
func (p *PGPublisher) PublishStream(ps schema.PriceStream) error {
	return p.client.DB().Create(&QuoteRecord{
		Product: ps.Bond.Tenor,
		Bid:     ps.Bid.Price.Decimal().String(),
		Offer:   ps.Offer.Price.Decimal().String(),
	}).Error
}

// PublishGUIQuote inserts one quote row with its capture timestamp.
func (p *PGPublisher) PublishGUIQuote(q schema.GUIQuote) error {
	return p.client.DB().Create(&QuoteRecord{
		Product:    q.Bond.Tenor,
		Bid:        q.Bid.Decimal().String(),
		Offer:      q.Offer.Decimal().String(),
		CapturedAt: q.CapturedAt,
	}).Error
}

// PublishInquiry inserts one inquiry row.
func (p *PGPublisher) PublishInquiry(inq schema.Inquiry) error {
	return p.client.DB().Create(&InquiryRecord{
		InquiryID: inq.InquiryID,
		Product:   inq.Bond.Tenor,
		Side:      inq.Side.String(),
		Quantity:  inq.Quantity,
		Price:     inq.Price.Decimal().String(),
		State:     inq.State.String(),
	}).Error
}

// Close closes the connection pool.
func (p *PGPublisher) Close() error {
	return p.client.Close()
}
