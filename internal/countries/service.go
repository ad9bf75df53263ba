package countries

import (
	"context"

	"flagphone_backend/platform/apperr"
	"flagphone_backend/platform/logger"
	"flagphone_backend/platform/sanitize"
)

const maxQueryRunes = 64

// Service serves the directory to picker clients.
type Service struct {
	dir   *Directory
	flags FlagResolver
	log   *logger.Logger
}

func NewService(dir *Directory, flags FlagResolver, log *logger.Logger) *Service {
	if flags == nil {
		flags = EmojiFlags{}
	}
	return &Service{dir: dir, flags: flags, log: log}
}

// Directory exposes the loaded directory.
func (s *Service) Directory() *Directory {
	return s.dir
}

// List returns what a picker shows for req: the selected subset, narrowed by
// the query once one is typed.
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return nil, apperr.Validation(err.Error()).WithOp("countries.List")
	}

	list := s.dir.Apply(Selection{Mode: mode, Codes: req.Codes})
	session := NewSearchSession(list, req.Current)
	session.Update(sanitize.Query(req.Query, maxQueryRunes))
	visible := session.Visible()

	items := make([]CountryItem, 0, len(visible))
	for _, c := range visible {
		flag, err := s.flags.ResolveFlag(ctx, c)
		if err != nil {
			s.log.Warn("flag resolution failed", "code", c.Code, "error", err)
			flag = Emoji(c.Code)
		}
		items = append(items, CountryItem{
			Code:      c.Code,
			Name:      c.Name,
			DialCode:  c.DialCode,
			FlagAsset: c.FlagAsset,
			Flag:      flag,
			Selected:  session.IsSelected(c),
		})
	}

	return &ListResponse{Items: items, Total: len(items)}, nil
}

// Get returns one country by code.
func (s *Service) Get(ctx context.Context, code string) (*CountryItem, error) {
	c, err := s.dir.Lookup(code)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnknownCountry, "unknown country code", err).WithOp("countries.Get")
	}

	flag, err := s.flags.ResolveFlag(ctx, c)
	if err != nil {
		s.log.Warn("flag resolution failed", "code", c.Code, "error", err)
		flag = Emoji(c.Code)
	}

	return &CountryItem{
		Code:      c.Code,
		Name:      c.Name,
		DialCode:  c.DialCode,
		FlagAsset: c.FlagAsset,
		Flag:      flag,
	}, nil
}
