package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrBadPriceToken = errors.New("malformed 32nds price token")

// Price is a fixed-point bond price counting 1/256ths of a point.
// One tick equals 1/256; a full point equals 256 ticks.
type Price int64

// PriceTick is the smallest representable price increment (1/256).
const PriceTick Price = 1

const ticksPerPoint = 256

// one tick = 1/256 = 0.00390625 = 390625e-8
var tickDecimal = decimal.New(390625, -8)

// ParsePrice32 decodes a 32nds token such as "100-165" into ticks.
// The token is <handle>-<xy><z> where xy are 32nds (00..31) and z is
// an eighth-of-a-32nd digit (0..7).
func ParsePrice32(token string) (Price, error) {
	sep := strings.IndexByte(token, '-')
	if sep <= 0 || len(token)-sep != 4 {
		return 0, fmt.Errorf("%w: %q", ErrBadPriceToken, token)
	}
	handle, err := strconv.ParseInt(token[:sep], 10, 64)
	if err != nil || handle < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadPriceToken, token)
	}
	frac := token[sep+1:]
	for i := 0; i < len(frac); i++ {
		if frac[i] < '0' || frac[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrBadPriceToken, token)
		}
	}
	xy := int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	z := int64(frac[2] - '0')
	if xy > 31 || z > 7 {
		return 0, fmt.Errorf("%w: %q", ErrBadPriceToken, token)
	}
	return Price(handle*ticksPerPoint + xy*8 + z), nil
}

// String encodes the price back into 32nds notation, reproducing the
// same digits a parsed token carried.
func (p Price) String() string {
	handle := int64(p) / ticksPerPoint
	rem := int64(p) % ticksPerPoint
	if rem < 0 {
		handle--
		rem += ticksPerPoint
	}
	return fmt.Sprintf("%d-%02d%d", handle, rem/8, rem%8)
}

// Decimal returns the exact decimal value of the price.
func (p Price) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(p)).Mul(tickDecimal)
}

// PriceFromDecimal converts a decimal point value into ticks,
// rounding to the nearest 1/256.
func PriceFromDecimal(d decimal.Decimal) Price {
	return Price(d.Mul(decimal.NewFromInt(ticksPerPoint)).Round(0).IntPart())
}

// ParsePriceDecimal decodes a plain decimal price token into ticks.
func ParsePriceDecimal(token string) (Price, error) {
	d, err := decimal.NewFromString(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadPriceToken, token)
	}
	return PriceFromDecimal(d), nil
}
