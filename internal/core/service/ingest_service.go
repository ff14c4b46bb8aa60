package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadflow/lead-distribution/internal/core/domain"
	"github.com/leadflow/lead-distribution/internal/core/ports"
)

// requiredHeaders is the exact, case-sensitive header set an upload must
// carry. Extra columns are tolerated; order does not matter.
var requiredHeaders = []string{"firstName", "phone", "email", "notes"}

// IngestService streams an uploaded CSV, filters rows and distributes the
// survivors across the calling admin's agent pool round-robin.
type IngestService struct {
	users ports.UserRepository
	leads ports.LeadRepository
	log   zerolog.Logger
}

func NewIngestService(users ports.UserRepository, leads ports.LeadRepository, log zerolog.Logger) *IngestService {
	return &IngestService{users: users, leads: leads, log: log}
}

// leadRow is one validated, normalized CSV row.
type leadRow struct {
	firstName string
	phone     string
	email     string
	notes     string
}

// DistributeFile runs the full pipeline: agent pool snapshot, header
// validation, per-row filtering, round-robin assignment, bulk insert.
// The file at path is removed exactly once whichever exit is taken.
func (s *IngestService) DistributeFile(ctx context.Context, adminID, path string) (*ports.DistributionResult, error) {
	var once sync.Once
	removeFile := func() {
		once.Do(func() {
			if err := os.Remove(path); err != nil {
				s.log.Warn().Err(err).Str("path", path).Msg("failed to remove upload")
			}
		})
	}
	defer removeFile()

	// The pool is read once per request. It can change between this
	// snapshot and the insert; that inconsistency window is accepted.
	agents, err := s.users.ListAgentsByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if len(agents) == 0 {
		return nil, domain.ErrNoAgentsAvailable
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStreamRead, err)
	}
	defer f.Close()

	rows, dropped, err := readRows(f)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNoValidRows
	}

	now := time.Now().UTC()
	batch := make([]*domain.Lead, len(rows))
	for i, row := range rows {
		batch[i] = &domain.Lead{
			AgentID:   agents[i%len(agents)].ID,
			AdminID:   adminID,
			FirstName: row.firstName,
			Phone:     row.phone,
			Email:     row.email,
			Notes:     row.notes,
			Status:    domain.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	inserted, err := s.leads.InsertMany(ctx, batch)
	if err != nil {
		s.log.Error().Err(err).Str("admin_id", adminID).Int("rows", len(batch)).Msg("bulk insert failed")
		return nil, err
	}

	s.log.Info().
		Str("admin_id", adminID).
		Int("distributed", len(inserted)).
		Int("dropped", dropped).
		Int("agents", len(agents)).
		Msg("csv distributed")

	return &ports.DistributionResult{Leads: inserted, Dropped: dropped}, nil
}

// readRows validates the header line, then streams data rows through the
// filter. Header validation completes before any row is accepted; a
// missing header aborts without consuming the rest of the stream.
func readRows(r io.Reader) ([]leadRow, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled by the row filter

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, &domain.InvalidHeadersError{Missing: requiredHeaders}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrStreamRead, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, h := range requiredHeaders {
		if _, ok := index[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, 0, &domain.InvalidHeadersError{Missing: missing}
	}

	var rows []leadRow
	dropped := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", domain.ErrStreamRead, err)
		}

		row, ok := filterRow(record, index)
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, row)
	}

	return rows, dropped, nil
}

// filterRow applies the silent-drop policy: empty firstName or phone,
// phone not ten digits, or a malformed non-empty email all discard the
// row without erroring the upload.
func filterRow(record []string, index map[string]int) (leadRow, bool) {
	field := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	firstName := field("firstName")
	phone := field("phone")
	email := field("email")

	if firstName == "" || phone == "" {
		return leadRow{}, false
	}
	if !domain.ValidMobile(phone) {
		return leadRow{}, false
	}
	if email != "" && !domain.ValidEmail(email) {
		return leadRow{}, false
	}

	return leadRow{
		firstName: strings.TrimSpace(firstName),
		phone:     strings.TrimSpace(phone),
		email:     strings.TrimSpace(email),
		notes:     field("notes"),
	}, true
}
