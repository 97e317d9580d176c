package currency

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/costview/backend/internal/domain/billing"
	"github.com/costview/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Converter provides exchange rates and amount conversion.
type Converter interface {
	// GetExchangeRate returns the rate for converting from one currency to
	// another on a given date. Equal currencies (case-insensitively) yield 1.
	GetExchangeRate(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (decimal.Decimal, error)

	// Convert converts an amount between currencies, rounding to two decimal
	// places. When the currencies match the amount is returned unchanged and
	// the rate is nil.
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, date time.Time) (decimal.Decimal, *decimal.Decimal, error)
}

// Config holds the simulated rate provider endpoint settings.
type Config struct {
	URL    string
	APIKey string
}

// Service is a deterministic Converter. The rate derivation is a stand-in for
// a remote rate provider: it is stable across runs and platforms so responses
// can be asserted literally, and it is a pure function, safe under unlimited
// concurrency.
type Service struct {
	cfg    Config
	logger *zap.Logger
}

// NewService creates a currency converter service.
func NewService(cfg Config, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, logger: logger}
}

// GetExchangeRate implements Converter.
func (s *Service) GetExchangeRate(ctx context.Context, fromCurrency, toCurrency string, date time.Time) (decimal.Decimal, error) {
	from := billing.NormalizeCurrency(fromCurrency)
	to := billing.NormalizeCurrency(toCurrency)

	s.logger.Debug("simulated rate provider call",
		zap.String("url", fmt.Sprintf("%s/%s/%s/%s", s.cfg.URL, from, to, date.Format("2006-01-02"))),
	)

	if from == to {
		return decimal.NewFromInt(1), nil
	}

	rate, err := deriveRate(from, to, date)
	if err != nil {
		return decimal.Decimal{}, shared.WrapError(shared.ErrKindCurrencyServiceCallError, err, fmt.Sprintf("%s => %s", from, to))
	}
	return rate, nil
}

// Convert implements Converter.
func (s *Service) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, date time.Time) (decimal.Decimal, *decimal.Decimal, error) {
	from := billing.NormalizeCurrency(fromCurrency)
	to := billing.NormalizeCurrency(toCurrency)

	if from == to {
		return amount, nil, nil
	}

	rate, err := s.GetExchangeRate(ctx, from, to, date)
	if err != nil {
		return decimal.Decimal{}, nil, err
	}
	return amount.Mul(rate).Round(2), &rate, nil
}

// deriveRate computes the deterministic exchange rate:
//
//	base      = packKey(FROM+TO) mod 10, reciprocal when the key is even
//	modifier  = last two digits of the decimal string of key/dateKey
//	rate      = round(base * (0.95 + 0.001*modifier), 2)
//
// The quotient is carried to 28 fraction digits with ties to even, the way a
// 128-bit decimal type divides two integers, and the final rounding runs in
// float64 with ties to even. Rates are asserted literally downstream, so both
// steps are fixed.
//
// A zero base magnitude on the reciprocal branch is non-invertible and fails.
func deriveRate(from, to string, date time.Time) (decimal.Decimal, error) {
	pairKey := packKey(from + to)
	base := pairKey % 10
	invert := pairKey%2 == 0

	dateKey := packKey(date.Format("2006-01-02"))
	quotient := quotientString(pairKey, dateKey)
	if len(quotient) < 2 {
		return decimal.Decimal{}, fmt.Errorf("rate quotient %q too short", quotient)
	}
	modifier, err := strconv.Atoi(quotient[len(quotient)-2:])
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("rate modifier from %q: %w", quotient, err)
	}

	baseFactor := float64(base)
	if invert {
		if base == 0 {
			return decimal.Decimal{}, fmt.Errorf("non-invertible base factor for pair %s%s", from, to)
		}
		baseFactor = 1 / float64(base)
	}

	rate := baseFactor * (0.95 + 0.001*float64(modifier))
	return decimal.NewFromFloat(math.RoundToEven(rate*100) / 100), nil
}

// quotientScale is the fraction-digit capacity of a 128-bit decimal.
const quotientScale = 28

// quotientString renders dividend/divisor with up to quotientScale fraction
// digits. An inexact division rounds the last digit with ties to even and
// keeps the full scale; an exact one drops trailing zeros down to its natural
// scale. Both operands must be positive.
func quotientString(dividend, divisor int64) string {
	scaled := new(big.Int).Mul(
		big.NewInt(dividend),
		new(big.Int).Exp(big.NewInt(10), big.NewInt(quotientScale), nil),
	)
	quo, rem := new(big.Int).QuoRem(scaled, big.NewInt(divisor), new(big.Int))

	frac := quotientScale
	if rem.Sign() != 0 {
		switch new(big.Int).Lsh(rem, 1).Cmp(big.NewInt(divisor)) {
		case 1:
			quo.Add(quo, big.NewInt(1))
		case 0:
			if quo.Bit(0) == 1 {
				quo.Add(quo, big.NewInt(1))
			}
		}
	} else {
		ten := big.NewInt(10)
		r := new(big.Int)
		for frac > 0 {
			q, _ := new(big.Int).QuoRem(quo, ten, r)
			if r.Sign() != 0 {
				break
			}
			quo.Set(q)
			frac--
		}
	}

	digits := quo.String()
	if frac == 0 {
		return digits
	}
	if len(digits) <= frac {
		digits = strings.Repeat("0", frac-len(digits)+1) + digits
	}
	return digits[:len(digits)-frac] + "." + digits[len(digits)-frac:]
}

// packKey interprets up to the first eight ASCII bytes of s as a little-endian
// 64-bit integer, zero padded. ASCII input keeps the result non-negative.
func packKey(s string) int64 {
	var buf [8]byte
	copy(buf[:], s)
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
