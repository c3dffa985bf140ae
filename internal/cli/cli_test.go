package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GillesH-web/Pythagore/internal/calendar"
	"github.com/GillesH-web/Pythagore/internal/cli"
	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/contacts"
	"github.com/GillesH-web/Pythagore/internal/engine"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockFetcher simulates the network layer.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

type result struct {
	stdout string
	stderr string
	err    error
}

// newApp isolates the app from the user's configuration directory.
func newApp(t *testing.T) *cli.App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return &cli.App{
		Viper:    viper.New(),
		Clock:    MockClock{CurrentTime: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)},
		Importer: &contacts.Importer{},
	}
}

func run(a *cli.App, stdin string, args ...string) result {
	var stdout, stderr bytes.Buffer
	root := a.RootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	err := root.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

var jean = []string{
	"--" + config.FlagFirstName1, "Jean",
	"--" + config.FlagFirstName2, "Marie",
	"--" + config.FlagLastName, "Dupont",
	"--" + config.FlagBirthDate, "1995-06-15",
}

func calc(extra ...string) []string {
	return append(append([]string{"calc"}, jean...), extra...)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))
	return path
}

const addressBook = `BEGIN:VCARD
VERSION:4.0
FN:Jean Marie Dupont
N:Dupont;Jean;Marie;;
BDAY:19950615
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:John Smith
N:Smith;John;;;
BDAY:1980-02-29
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:R2D2 Droid
N:Droid;R2D2;;;
BDAY:1977-05-25
END:VCARD
`

// -----------------------------------------------------------------------------
// calc
// -----------------------------------------------------------------------------

func TestCalc_JSON(t *testing.T) {
	res := run(newApp(t), "", calc("--format", "json")...)
	require.NoError(t, res.err)

	var doc struct {
		Variant string `json:"variant"`
		Report  struct {
			LifePathNumber int            `json:"lifePathNumber"`
			TraitAnalyses  map[string]any `json:"traitAnalyses"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, config.VariantFirstNames, doc.Variant)
	assert.Equal(t, 9, doc.Report.LifePathNumber)
	assert.NotEmpty(t, doc.Report.TraitAnalyses, "traits are on by default")
}

func TestCalc_TextDefaultsToFrench(t *testing.T) {
	res := run(newApp(t), "", calc()...)
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Chemin de vie")
	assert.Contains(t, res.stdout, "Jean Marie DUPONT")
}

func TestCalc_LanguageFlag(t *testing.T) {
	res := run(newApp(t), "", calc("--lang", "en", "--traits=false")...)
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Life path")
	assert.NotContains(t, res.stdout, "Dominant number")
}

func TestCalc_EnvironmentOverridesDefaults(t *testing.T) {
	a := newApp(t)
	t.Setenv("PYTHAGORE_LANGUAGE", "en")
	t.Setenv("PYTHAGORE_FORMAT", "yaml")

	res := run(a, "", calc()...)
	require.NoError(t, res.err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, config.VariantFirstNames, doc["variant"])
}

func TestCalc_ConfigFileAndFlagPrecedence(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "language: en\nformat: json\nvariant: last-names\n")

	t.Run("file overrides defaults", func(t *testing.T) {
		res := run(newApp(t), "", calc("--config", cfg)...)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, `"variant": "last-names"`)
	})

	t.Run("flags override file", func(t *testing.T) {
		res := run(newApp(t), "", calc("--config", cfg, "--format", "text", "--variant", "first-names")...)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Life path")
	})
}

func TestCalc_MissingConfigFile(t *testing.T) {
	res := run(newApp(t), "", calc("--config", filepath.Join(t.TempDir(), "missing.yaml"))...)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), config.ErrConfigRead)
}

func TestCalc_Validation(t *testing.T) {
	res := run(newApp(t), "", "calc", "--lang", "en", "--last-name", "Dupont3", "--birth-date", "2030-01-01")
	require.Error(t, res.err)

	msg := res.err.Error()
	assert.Contains(t, msg, config.ErrInvalidInput)
	assert.Contains(t, msg, "birthDate: The birth date must be in the past")
	assert.Contains(t, msg, "firstName1: This field is required")
	assert.Contains(t, msg, "lastName: Only letters")
	assert.Less(t, strings.Index(msg, "birthDate"), strings.Index(msg, "lastName"), "fields are sorted")
}

func TestCalc_NoValidate(t *testing.T) {
	res := run(newApp(t), "", "calc", "--no-validate", "--first-name", "X", "--last-name", "Y", "--birth-date", "15/06/1995")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, engine.ErrInvalidDate, "the engine still rejects unparseable dates")
}

func TestCalc_InvalidSettings(t *testing.T) {
	res := run(newApp(t), "", calc("--variant", "middle-names", "--format", "pdf")...)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), config.ErrVariantUnknown)
	assert.Contains(t, res.err.Error(), config.ErrFormatUnknown)
}

func TestCalc_OutFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.yaml")

	res := run(newApp(t), "", calc("--format", "yaml", "-o", out)...)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc struct {
		Report struct {
			LifePathNumber int `yaml:"lifePathNumber"`
		} `yaml:"report"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, 9, doc.Report.LifePathNumber)
}

// -----------------------------------------------------------------------------
// calendar
// -----------------------------------------------------------------------------

func TestCalendar(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantTrigger string
		wantErr     error
	}{
		{name: "no alarm", args: nil},
		{name: "value unit direction", args: []string{"--remind", "2", "--remind-unit", "d", "--remind-dir", "before"}, wantTrigger: "TRIGGER:-P2D"},
		{name: "hours after", args: []string{"--remind", "3", "--remind-unit", "h", "--remind-dir", "after"}, wantTrigger: "TRIGGER:PT3H"},
		{name: "iso duration", args: []string{"--reminder", "-PT30M"}, wantTrigger: "TRIGGER:-PT30M"},
		{name: "remind wins over iso", args: []string{"--reminder", "-PT30M", "--remind", "1"}, wantTrigger: "TRIGGER:-P1D"},
		{name: "bad unit", args: []string{"--remind", "1", "--remind-unit", "w"}, wantErr: calendar.ErrReminderUnit},
		{name: "bad iso", args: []string{"--reminder", "tomorrow"}, wantErr: calendar.ErrReminder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(append([]string{"calendar"}, jean...), tt.args...)
			res := run(newApp(t), "", args...)

			if tt.wantErr != nil {
				require.Error(t, res.err)
				assert.ErrorIs(t, res.err, tt.wantErr)
				return
			}
			require.NoError(t, res.err)
			assert.Equal(t, 7, strings.Count(res.stdout, "BEGIN:VEVENT"))
			assert.Contains(t, res.stdout, "SUMMARY:Cycle 1 (6) – Jean Marie Dupont")
			if tt.wantTrigger == "" {
				assert.NotContains(t, res.stdout, "BEGIN:VALARM")
			} else {
				assert.Equal(t, 7, strings.Count(res.stdout, tt.wantTrigger))
			}
		})
	}
}

func TestCalendar_ReminderFromConfig(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "calendar:\n  reminder: -P1D\n")

	res := run(newApp(t), "", append(append([]string{"calendar"}, jean...), "--config", cfg)...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "TRIGGER:-P1D")
}

func TestCalendar_OutGetsICSExtension(t *testing.T) {
	base := filepath.Join(t.TempDir(), "jean")

	res := run(newApp(t), "", append(append([]string{"calendar"}, jean...), "-o", base)...)
	require.NoError(t, res.err)

	data, err := os.ReadFile(base + config.ExtICS)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.NoFileExists(t, base)
}

// -----------------------------------------------------------------------------
// batch
// -----------------------------------------------------------------------------

func TestBatch_LocalFile(t *testing.T) {
	vcf := writeFile(t, "contacts.vcf", addressBook)

	res := run(newApp(t), "", "batch", "--vcf", vcf, "--format", "json")
	require.NoError(t, res.err)

	var docs []struct {
		Person engine.Input `json:"person"`
		Report struct {
			LifePathNumber int `json:"lifePathNumber"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &docs))
	require.Len(t, docs, 2, "contacts with invalid names are skipped")
	assert.Equal(t, "Jean", docs[0].Person.FirstName1)
	assert.Equal(t, 9, docs[0].Report.LifePathNumber)
	assert.Equal(t, "John", docs[1].Person.FirstName1)
	assert.Contains(t, res.stderr, "Processed 2 contacts, skipped 1")
}

func TestBatch_TruncatedAddressBook(t *testing.T) {
	cut := strings.Index(addressBook, "BEGIN:VCARD\nVERSION:3.0")
	vcf := writeFile(t, "broken.vcf", addressBook[:cut]+"X-STRAY:oops\n"+addressBook[cut:])

	res := run(newApp(t), "", "batch", "--vcf", vcf, "--format", "json")
	require.NoError(t, res.err, "the contacts before the malformed card are still reported")

	var docs []struct {
		Person engine.Input `json:"person"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "Jean", docs[0].Person.FirstName1)
	assert.Contains(t, res.stderr, "Processed 1 contacts, skipped 0")
	assert.Contains(t, res.stderr, "later contacts were not read")
}

func TestBatch_Web(t *testing.T) {
	a := newApp(t)
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://dav.example.com/book", "alice", "secret").
		Return(io.NopCloser(strings.NewReader(addressBook)), nil).Once()
	a.Importer = &contacts.Importer{
		Fetcher:  fetcher,
		Password: func(user string) (string, error) { return "secret", nil },
	}

	res := run(a, "", "batch", "--url", "https://dav.example.com/book", "--user", "alice", "--format", "ics", "--remind", "1")
	require.NoError(t, res.err)

	assert.Equal(t, 14, strings.Count(res.stdout, "BEGIN:VEVENT"))
	assert.Equal(t, 14, strings.Count(res.stdout, "TRIGGER:-P1D"))
	fetcher.AssertExpectations(t)
}

func TestBatch_FetchError(t *testing.T) {
	a := newApp(t)
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, "", "").Return(nil, errors.New("offline"))
	a.Importer = &contacts.Importer{Fetcher: fetcher}

	res := run(a, "", "batch", "--url", "https://dav.example.com/book")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "offline")
}

func TestBatch_NoSource(t *testing.T) {
	res := run(newApp(t), "", "batch")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), config.ErrNoSource)
}

// -----------------------------------------------------------------------------
// credentials
// -----------------------------------------------------------------------------

func TestCredentials(t *testing.T) {
	keyring.MockInit()

	res := run(newApp(t), "s3cret\n", "credentials", "set", "--user", "alice")
	require.NoError(t, res.err)
	pass, err := contacts.Credentials("alice")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pass)

	res = run(newApp(t), "", "credentials", "delete", "--user", "alice")
	require.NoError(t, res.err)
	pass, err = contacts.Credentials("alice")
	require.NoError(t, err)
	assert.Empty(t, pass)
}

func TestCredentials_Errors(t *testing.T) {
	keyring.MockInit()

	res := run(newApp(t), "s3cret\n", "credentials", "set")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), config.ErrUserRequired)

	res = run(newApp(t), "", "credentials", "set", "--user", "alice")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), config.ErrPassword)
}

// -----------------------------------------------------------------------------
// config, serve, version
// -----------------------------------------------------------------------------

func TestConfig_InitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	res := run(newApp(t), "", "config", "init", "--config", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, config.FilePermUserRW, info.Mode().Perm())

	res = run(newApp(t), "", "config", "show", "--config", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, path)

	var got config.Settings
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, config.Defaults(), got)

	res = run(newApp(t), "", "config", "init", "--config", path)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), config.ErrConfigExists)
}

func TestConfig_InitDefaultLocation(t *testing.T) {
	a := newApp(t)
	res := run(a, "", "config", "init")
	require.NoError(t, res.err)

	_, err := os.Stat(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), config.ConfigDirName, "config.yaml"))
	require.NoError(t, err)

	res = run(a, "", "config", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "config.yaml")
}

func TestConfig_ShowWithoutFile(t *testing.T) {
	res := run(newApp(t), "", "config", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "No configuration file found")
	assert.Contains(t, res.stdout, "language: fr")
}

func TestServe_InvalidPort(t *testing.T) {
	res := run(newApp(t), "", "serve", "--port", "70000")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), config.ErrPortRange)
}

func TestVersion(t *testing.T) {
	res := run(newApp(t), "", "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "Pythagore version "+config.Version))
}

func TestSetupLogging(t *testing.T) {
	a := newApp(t)
	var calls []bool
	a.SetupLogging = func(debug bool) io.Closer {
		calls = append(calls, debug)
		return nil
	}

	res := run(a, "", calc("--debug", "--format", "json")...)
	require.NoError(t, res.err)
	assert.Equal(t, []bool{true}, calls)
	assert.NoError(t, a.Close())
}
