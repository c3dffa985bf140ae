// Package contacts imports people from vCard address books, either a local
// .vcf file or a CardDAV/WebDAV collection, so that reports can be computed
// for many people at once.
package contacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/engine"
	"github.com/emersion/go-vcard"
)

// ErrTruncated reports that a malformed card stopped decoding. The people
// read before it are returned alongside.
var ErrTruncated = errors.New(config.ErrVCardTruncated)

// Source locates an address book.
type Source struct {
	Mode string // config.SourceModeLocal or config.SourceModeWeb
	Path string // Path to the .vcf file
	URL  string // CardDAV or WebDAV URL
	User string // HTTP Basic Auth Username
	Pass string // HTTP Basic Auth Password
}

// NewSource picks the mode from whichever of path or url is set.
// path wins when both are given.
func NewSource(path, url, user string) (Source, error) {
	switch {
	case path != "":
		return Source{Mode: config.SourceModeLocal, Path: path}, nil
	case url != "":
		return Source{Mode: config.SourceModeWeb, URL: url, User: user}, nil
	default:
		return Source{}, errors.New(config.ErrNoSource)
	}
}

// Person is one contact with a usable name and a full birth date.
type Person struct {
	Input engine.Input
	Date  engine.BirthDate
}

// Name is the display name used in documents and calendar events.
func (p Person) Name() string { return p.Input.FullName() }

// Importer reads people from a Source.
type Importer struct {
	Fetcher VCardFetcher

	// Password looks up a stored password when a web source has a user but
	// no password. Nil disables the lookup.
	Password func(user string) (string, error)
}

// NewImporter wires the HTTP fetcher and the OS keyring.
func NewImporter() *Importer {
	return &Importer{
		Fetcher:  NewHTTPFetcher(),
		Password: Credentials,
	}
}

// Import opens src and decodes every usable contact.
// On ErrTruncated the contacts read before the malformed card are returned too.
func (im *Importer) Import(ctx context.Context, src Source) ([]Person, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompContacts,
		config.LogKeyMode, src.Mode,
	)
	log.InfoContext(ctx, config.MsgImportStart)

	reader, err := im.Open(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	people, err := Decode(ctx, reader)
	if err == nil {
		log.Debug(config.MsgImportDone, config.LogKeyDuration, time.Since(start).Milliseconds())
	}
	return people, err
}

// Open returns the raw vCard stream of src.
func (im *Importer) Open(ctx context.Context, src Source) (io.ReadCloser, error) {
	switch src.Mode {
	case config.SourceModeLocal:
		if src.Path == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(src.Path)
	case config.SourceModeWeb:
		if src.URL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		pass := src.Pass
		if pass == "" && src.User != "" && im.Password != nil {
			p, err := im.Password(src.User)
			if err != nil {
				slog.Debug(config.MsgPassFail,
					config.LogKeyComponent, config.CompContacts,
					config.LogKeyUser, src.User,
					config.LogKeyError, err,
				)
			}
			pass = p
		}
		return im.Fetcher.Fetch(ctx, src.URL, src.User, pass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, src.Mode)
	}
}

// Decode reads every vCard in r. Cards without a full birth date or without
// both a given name and a family name are skipped. A malformed card ends the
// stream: the people read so far are returned with an ErrTruncated error.
func Decode(ctx context.Context, r io.Reader) ([]Person, error) {
	decoder := vcard.NewDecoder(r)
	stats := struct{ processed, found int }{}
	var people []Person
	var truncated error

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyError, err)
			// A decoder error leaves the stream mid-card; nothing after it is readable.
			truncated = fmt.Errorf("%w after %d cards: %v", ErrTruncated, stats.processed, err)
			break
		}
		stats.processed++

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		date, err := engine.ParseBirthDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyValue, bday.Value)
			continue
		}

		in, ok := namesOf(card)
		if !ok {
			slog.Debug(config.MsgSkippedName,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyDOB, date.String())
			continue
		}
		in.BirthDate = date.String()

		people = append(people, Person{Input: in, Date: date})
		stats.found++
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompContacts,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.found),
		),
		slog.Bool(config.LogKeyTruncated, truncated != nil),
	)
	return people, truncated
}

// namesOf maps the structured name N onto the form fields:
// given name, then additional names, then family names.
// FN is split on spaces when N is missing or incomplete.
func namesOf(card vcard.Card) (engine.Input, bool) {
	var given, family []string

	if n := card.Name(); n != nil {
		given = append(splitList(n.GivenName), splitAdditional(n.AdditionalName)...)
		family = splitList(n.FamilyName)
	}

	if len(given) == 0 || len(family) == 0 {
		fields := strings.Fields(card.Value(config.VCardFN))
		if len(fields) < 2 {
			return engine.Input{}, false
		}
		given = fields[:len(fields)-1]
		family = fields[len(fields)-1:]
	}

	return engine.Input{
		FirstName1: at(given, 0),
		FirstName2: at(given, 1),
		FirstName3: at(given, 2),
		LastName:   at(family, 0),
		LastName2:  at(family, 1),
		LastName3:  at(family, 2),
	}, true
}

// splitList splits a comma separated N component and drops blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, config.VCardListSep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// splitAdditional accepts both "Marie,Claire" and "Marie Claire".
func splitAdditional(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}
