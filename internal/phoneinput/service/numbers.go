package service

import (
	"context"
	"strings"

	"flagphone_backend/internal/phoneinput/numbering"
	"flagphone_backend/internal/phoneinput/transport"
	"flagphone_backend/platform/apperr"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

// Format partially formats text for a region without a session.
func (s *Service) Format(req transport.FormatRequest) transport.FormatResponse {
	maxDigits := req.MaxDigits
	if maxDigits <= 0 {
		maxDigits = s.opts.MaxDigits
	}
	f := numbering.NewPartialFormatter(s.source, maxDigits)
	return transport.FormatResponse{DisplayText: f.Format(req.Text, strings.ToUpper(req.Region))}
}

// Validate parses text for a region without a session. Parse failures are
// reported as Valid=false, never as errors.
func (s *Service) Validate(req transport.ValidateRequest) transport.ValidateResponse {
	n, err := s.validator.Parse(req.Text, strings.ToUpper(req.Region), req.IgnoreType)
	if err != nil {
		return transport.ValidateResponse{}
	}
	return transport.ValidateResponse{
		Valid:         true,
		Region:        n.Region,
		CallingCode:   n.CallingCode,
		E164:          s.validator.ToE164(n),
		National:      s.validator.ToNational(n),
		International: s.validator.ToInternational(n),
		URI:           s.validator.ToURI(n),
	}
}

// QRCode renders the session number's tel: URI as a PNG. Size is clamped to
// [128, 1024]; 0 selects DefaultQRSize.
func (s *Service) QRCode(ctx context.Context, id string, size int) ([]byte, error) {
	num, err := s.Number(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case size == 0:
		size = DefaultQRSize
	case size < minQRSize:
		size = minQRSize
	case size > maxQRSize:
		size = maxQRSize
	}

	png, err := qrcode.Encode(num.URI, qrcode.Medium, size)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "qr encoding failed", err).WithOp("phoneinput.QRCode")
	}
	return png, nil
}
