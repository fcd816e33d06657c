package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/roger120981/buenavida-admin/internal/cache"
	"github.com/roger120981/buenavida-admin/internal/export"
	"github.com/roger120981/buenavida-admin/internal/form"
	"github.com/roger120981/buenavida-admin/internal/gateway"
	"github.com/roger120981/buenavida-admin/internal/models"
	"github.com/roger120981/buenavida-admin/internal/store"
)

type app struct {
	queries *cache.Queries
	filters *store.FilterStore
	logger  *zap.Logger
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	page := fs.Int("page", 0, "page to show (persists)")
	pageSize := fs.Int("size", 0, "page size (persists, resets page)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state := a.filters.State()
	if *pageSize > 0 {
		state = a.filters.SetPageSize(ctx, *pageSize)
	}
	if *page > 0 {
		state = a.filters.SetPage(ctx, *page)
	}

	result, err := a.queries.Participants(ctx, gateway.ListOptions{
		Filters:   state.Filters,
		Page:      state.Page,
		PageSize:  state.PageSize,
		SortBy:    state.SortBy,
		SortOrder: state.SortOrder,
	})
	if err != nil {
		return fmt.Errorf("could not load participants: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMEDICAID ID\tGENDER\tSTATUS\tCASE MANAGER")
	for _, p := range result.Data {
		status := "inactive"
		if p.IsActive {
			status = "active"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.MedicaidID, p.Gender, status, p.CaseManager.Name)
	}
	w.Flush()

	prev, next := "disabled", "disabled"
	if result.CanPrevious() {
		prev = "enabled"
	}
	if result.CanNext() {
		next = "enabled"
	}
	fmt.Printf("Page %d of %d (Total: %d)  prev: %s  next: %s\n",
		result.Page, result.TotalPages, result.Total, prev, next)
	return nil
}

func (a *app) get(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	id := fs.Int("id", 0, "participant id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id < 1 {
		return fmt.Errorf("-id is required")
	}

	p, err := a.queries.Participant(ctx, *id)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

// participantInput is the JSON shape accepted by create/update files.
type participantInput struct {
	Name           string  `json:"name"`
	MedicaidID     string  `json:"medicaidId"`
	DOB            string  `json:"dob"`
	Gender         string  `json:"gender"`
	IsActive       *bool   `json:"isActive"`
	HDM            bool    `json:"hdm"`
	ADHC           bool    `json:"adhc"`
	Location       string  `json:"location"`
	Community      string  `json:"community"`
	Address        string  `json:"address"`
	PrimaryPhone   string  `json:"primaryPhone"`
	SecondaryPhone string  `json:"secondaryPhone"`
	LocStartDate   string  `json:"locStartDate"`
	LocEndDate     string  `json:"locEndDate"`
	PocStartDate   string  `json:"pocStartDate"`
	PocEndDate     string  `json:"pocEndDate"`
	Units          *string `json:"units"`
	Hours          *string `json:"hours"`

	CaseManagerID     int                       `json:"caseManagerId"`
	CaseManagerCreate *models.CaseManagerCreate `json:"caseManagerCreate"`

	Caregivers []models.CaregiverAssignment `json:"caregivers"`
}

func readParticipantInput(path string) (*participantInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	var input participantInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return &input, nil
}

// applyInput writes the file's fields into the form.
func applyInput(f *form.ParticipantForm, input *participantInput) error {
	f.Edit(func(v *form.Values) {
		v.Name = input.Name
		v.MedicaidID = input.MedicaidID
		v.DOB = input.DOB
		v.Gender = input.Gender
		if input.IsActive != nil {
			v.IsActive = *input.IsActive
		}
		v.HDM = input.HDM
		v.ADHC = input.ADHC
		v.Location = input.Location
		v.Community = input.Community
		v.Address = input.Address
		v.PrimaryPhone = input.PrimaryPhone
		v.SecondaryPhone = input.SecondaryPhone
		v.LocStartDate = input.LocStartDate
		v.LocEndDate = input.LocEndDate
		v.PocStartDate = input.PocStartDate
		v.PocEndDate = input.PocEndDate
		if input.Units != nil {
			v.Units = *input.Units
		}
		if input.Hours != nil {
			v.Hours = *input.Hours
		}
		if input.CaseManagerID > 0 {
			v.CaseManagerConnectID = input.CaseManagerID
			v.CaseManagerCreate = nil
		}
		if input.CaseManagerCreate != nil {
			v.CaseManagerCreate = input.CaseManagerCreate
		}
	})
	for _, c := range input.Caregivers {
		if err := f.AddAssignment(c.CaregiverID, c.CaregiverName); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	file := fs.String("file", "", "JSON file with the participant fields")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	input, err := readParticipantInput(*file)
	if err != nil {
		return err
	}
	f := form.NewParticipantForm()
	if err := applyInput(f, input); err != nil {
		return err
	}
	return a.submit(ctx, f)
}

func (a *app) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.Int("id", 0, "participant id")
	file := fs.String("file", "", "JSON file with the changed fields")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id < 1 {
		return fmt.Errorf("-id is required")
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	participant, err := a.queries.Participant(ctx, *id)
	if err != nil {
		return fmt.Errorf("could not load participant %d: %w", *id, err)
	}
	f := form.Load(participant)
	for _, warning := range f.LoadWarnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	input, err := readParticipantInput(*file)
	if err != nil {
		return err
	}
	if err := applyInput(f, input); err != nil {
		return err
	}
	return a.submit(ctx, f)
}

// submit runs the shared submission flow and reports partial completion
// distinctly: a saved participant with failed relation calls is not rolled
// back.
func (a *app) submit(ctx context.Context, f *form.ParticipantForm) error {
	submitter := form.NewSubmitter(a.queries, a.logger)
	result, err := submitter.Submit(ctx, f)
	if err != nil {
		return err
	}
	if result.Ok() {
		fmt.Printf("Participant %d saved\n", result.Participant.ID)
		return nil
	}
	fmt.Printf("Participant %d saved, but some caregiver changes failed:\n", result.Participant.ID)
	for _, relErr := range result.RelationErrors {
		fmt.Printf("  - %s\n", relErr.Error())
	}
	return fmt.Errorf("%d caregiver change(s) were not applied", len(result.RelationErrors))
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int("id", 0, "participant id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id < 1 {
		return fmt.Errorf("-id is required")
	}

	result, err := a.queries.DeleteParticipant(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Println(result.Message)
	return nil
}

func (a *app) assign(ctx context.Context, args []string) error {
	return a.relation(ctx, "assign", args)
}

func (a *app) unassign(ctx context.Context, args []string) error {
	return a.relation(ctx, "unassign", args)
}

func (a *app) relation(ctx context.Context, op string, args []string) error {
	fs := flag.NewFlagSet(op, flag.ExitOnError)
	participantID := fs.Int("participant", 0, "participant id")
	caregiverID := fs.Int("caregiver", 0, "caregiver id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *participantID < 1 || *caregiverID < 1 {
		return fmt.Errorf("-participant and -caregiver are required")
	}

	var result *models.MutationResult
	var err error
	if op == "assign" {
		result, err = a.queries.AssignCaregiver(ctx, *participantID, *caregiverID)
	} else {
		result, err = a.queries.UnassignCaregiver(ctx, *participantID, *caregiverID)
	}
	if err != nil {
		return err
	}
	fmt.Println(result.Message)
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "participants.xlsx", "output file")
	status := fs.String("status", "active", "active or inactive")
	if err := fs.Parse(args); err != nil {
		return err
	}

	active := *status != "inactive"
	participants, err := a.queries.ParticipantsByStatus(ctx, active)
	if err != nil {
		return fmt.Errorf("could not load participants: %w", err)
	}

	raw, err := export.ParticipantsExcel(participants)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, raw, 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", *out, err)
	}
	fmt.Printf("Exported %d participants to %s\n", len(participants), *out)
	return nil
}

func (a *app) caregivers(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "add" {
		fs := flag.NewFlagSet("caregivers add", flag.ExitOnError)
		name := fs.String("name", "", "caregiver name")
		email := fs.String("email", "", "caregiver email")
		phone := fs.String("phone", "", "caregiver phone")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *name == "" {
			return fmt.Errorf("-name is required")
		}
		cg, err := a.queries.CreateCaregiver(ctx, models.CaregiverDTO{
			Name:     *name,
			Email:    *email,
			Phone:    *phone,
			IsActive: true,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Caregiver %d created\n", cg.ID)
		return nil
	}

	fs := flag.NewFlagSet("caregivers", flag.ExitOnError)
	page := fs.Int("page", 1, "page to show")
	pageSize := fs.Int("size", 10, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.queries.Caregivers(ctx, *page, *pageSize)
	if err != nil {
		return fmt.Errorf("could not load caregivers: %w", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tSTATUS")
	for _, cg := range result.Data {
		status := "inactive"
		if cg.IsActive {
			status = "active"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", cg.ID, cg.Name, cg.Email, cg.Phone, status)
	}
	w.Flush()
	fmt.Printf("Page %d of %d (Total: %d)\n", result.Page, result.TotalPages, result.Total)
	return nil
}

func (a *app) caseManagers(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "add" {
		fs := flag.NewFlagSet("case-managers add", flag.ExitOnError)
		name := fs.String("name", "", "case manager name")
		email := fs.String("email", "", "case manager email")
		phone := fs.String("phone", "", "case manager phone")
		agencyID := fs.Int("agency", 0, "agency id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *name == "" || *agencyID < 1 {
			return fmt.Errorf("-name and -agency are required")
		}
		cm, err := a.queries.CreateCaseManager(ctx, models.CaseManagerCreate{
			Name:     *name,
			Email:    *email,
			Phone:    *phone,
			AgencyID: *agencyID,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Case manager %d created\n", cm.ID)
		return nil
	}

	fs := flag.NewFlagSet("case-managers", flag.ExitOnError)
	page := fs.Int("page", 1, "page to show")
	pageSize := fs.Int("size", 10, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.queries.CaseManagers(ctx, *page, *pageSize)
	if err != nil {
		return fmt.Errorf("could not load case managers: %w", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tAGENCY")
	for _, cm := range result.Data {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", cm.ID, cm.Name, cm.Email, cm.Phone, cm.AgencyID)
	}
	w.Flush()
	fmt.Printf("Page %d of %d (Total: %d)\n", result.Page, result.TotalPages, result.Total)
	return nil
}

func (a *app) agencies(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("agencies", flag.ExitOnError)
	page := fs.Int("page", 1, "page to show")
	pageSize := fs.Int("size", 10, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.queries.Agencies(ctx, *page, *pageSize)
	if err != nil {
		return fmt.Errorf("could not load agencies: %w", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, agency := range result.Data {
		fmt.Fprintf(w, "%d\t%s\n", agency.ID, agency.Name)
	}
	w.Flush()
	fmt.Printf("Page %d of %d (Total: %d)\n", result.Page, result.TotalPages, result.Total)
	return nil
}

func (a *app) filtersCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.printFilters()
	}

	switch args[0] {
	case "show":
		return a.printFilters()
	case "reset":
		a.filters.Reset(ctx)
		return a.printFilters()
	case "set":
		if len(args) < 2 || !strings.Contains(args[1], "=") {
			return fmt.Errorf("usage: filters set key=value")
		}
		parts := strings.SplitN(args[1], "=", 2)
		a.filters.SetFilter(ctx, parts[0], parseFilterValue(parts[1]))
		return a.printFilters()
	case "sort":
		if len(args) < 3 {
			return fmt.Errorf("usage: filters sort <column> <asc|desc>")
		}
		a.filters.SetSort(ctx, args[1], args[2])
		return a.printFilters()
	default:
		return fmt.Errorf("unknown filters action %q", args[0])
	}
}

func (a *app) printFilters() error {
	raw, err := json.MarshalIndent(a.filters.State(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

// parseFilterValue keeps booleans and numbers typed so the server-side
// filter matching sees the same JSON types the dashboard sends.
func parseFilterValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}
