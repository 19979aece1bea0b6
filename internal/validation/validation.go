package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/foldertree"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/utils"
)

// ErrInvalid wraps every field-level validation failure.
var ErrInvalid = errors.New("invalid input")

// ConflictType represents the type of integrity problem found in stored data
type ConflictType string

const (
	ConflictDanglingParent     ConflictType = "dangling_parent"
	ConflictFolderCycle        ConflictType = "folder_cycle"
	ConflictDuplicateSibling   ConflictType = "duplicate_sibling_name"
	ConflictEntryMissingFolder ConflictType = "entry_missing_folder"
	ConflictInvalidDay         ConflictType = "invalid_day"
)

// Conflict is one integrity problem.
type Conflict struct {
	Type        ConflictType
	Description string
	IDs         []string // folders or entries involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}
	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks user input and stored records.
type Validator struct {
	v *validator.Validate
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("tzname", func(fl validator.FieldLevel) bool {
		return utils.ValidateTimezone(fl.Field().String())
	})
	_ = v.RegisterValidation("cronspec", func(fl validator.FieldLevel) bool {
		_, err := cronParser.Parse(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

// ParseCron parses a schedule the way the settings validator accepts it.
func ParseCron(spec string) (cron.Schedule, error) {
	return cronParser.Parse(spec)
}

// Struct validates s against its validate tags. Failures wrap ErrInvalid and
// name every offending field.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	case "hexcolor":
		return field + " must be a hex color such as #ff8800"
	case "tzname":
		return field + " must be an IANA timezone name or Local"
	case "cronspec":
		return field + " must be a cron expression or descriptor such as @every 15m"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

func (val *Validator) ValidateEntry(e models.Entry) error {
	return val.Struct(e)
}

func (val *Validator) ValidateFolder(f models.Folder) error {
	if err := val.Struct(f); err != nil {
		return err
	}
	if f.ParentID != nil && *f.ParentID == f.ID {
		return fmt.Errorf("%w: a folder cannot be its own parent", ErrInvalid)
	}
	return nil
}

func (val *Validator) ValidateSettings(s models.Settings) error {
	return val.Struct(s)
}

// ValidateFolderMove rejects reparenting folderID under newParentID when that
// would make the folder its own ancestor. An empty newParentID moves to the root.
func ValidateFolderMove(folders []models.Folder, folderID, newParentID string) error {
	if newParentID == "" {
		return nil
	}
	if newParentID == folderID {
		return fmt.Errorf("%w: a folder cannot be its own parent", ErrInvalid)
	}

	ancestry, err := foldertree.Build(folders, nil).Path(newParentID)
	switch {
	case errors.Is(err, foldertree.ErrNotFound):
		return fmt.Errorf("%w: parent folder %s does not exist", ErrInvalid, newParentID)
	case err != nil:
		return fmt.Errorf("%w: parent folder %s: %v", ErrInvalid, newParentID, err)
	}
	for _, f := range ancestry {
		if f.ID == folderID {
			return fmt.Errorf("%w: cannot move a folder into its own subtree", ErrInvalid)
		}
	}
	return nil
}

// CheckIntegrity inspects live folders and entries for problems the tree builder
// would otherwise silently work around.
func (val *Validator) CheckIntegrity(folders []models.Folder, entries []models.Entry) ValidationResult {
	var result ValidationResult

	byID := make(map[string]models.Folder, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
	}

	siblings := map[string][]string{}
	for _, f := range folders {
		parent := ""
		if !f.IsRoot() {
			parent = *f.ParentID
			if _, ok := byID[parent]; !ok {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDanglingParent,
					Description: fmt.Sprintf("Folder %q points at missing parent %s", f.Name, parent),
					IDs:         []string{f.ID},
				})
			}
		}
		key := parent + "\x00" + strings.ToLower(f.Name)
		siblings[key] = append(siblings[key], f.ID)
	}

	for _, ids := range siblings {
		if len(ids) > 1 {
			sort.Strings(ids)
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateSibling,
				Description: fmt.Sprintf("Folder name %q is used %d times under the same parent", byID[ids[0]].Name, len(ids)),
				IDs:         ids,
			})
		}
	}

	reported := map[string]bool{}
	for _, f := range folders {
		cycle := findCycle(byID, f.ID)
		if len(cycle) == 0 || reported[cycle[0]] {
			continue
		}
		for _, id := range cycle {
			reported[id] = true
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictFolderCycle,
			Description: fmt.Sprintf("Folders %s form a parent cycle", strings.Join(cycle, ", ")),
			IDs:         cycle,
		})
	}

	for _, e := range entries {
		if !utils.ValidateDateFormat(e.Day) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDay,
				Description: fmt.Sprintf("Entry %s has an invalid day %q", e.ID, e.Day),
				IDs:         []string{e.ID},
			})
		}
		if e.FolderID != nil && *e.FolderID != "" {
			if _, ok := byID[*e.FolderID]; !ok {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictEntryMissingFolder,
					Description: fmt.Sprintf("Entry %s is filed under missing folder %s", e.ID, *e.FolderID),
					IDs:         []string{e.ID},
				})
			}
		}
	}

	sort.SliceStable(result.Conflicts, func(i, j int) bool {
		a, b := result.Conflicts[i], result.Conflicts[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.IDs[0] < b.IDs[0]
	})
	return result
}

// findCycle returns the members of the cycle reachable from start, sorted, or nil.
func findCycle(byID map[string]models.Folder, start string) []string {
	pos := map[string]int{}
	var path []string
	cur := start
	for {
		if i, ok := pos[cur]; ok {
			cycle := append([]string(nil), path[i:]...)
			sort.Strings(cycle)
			return cycle
		}
		f, ok := byID[cur]
		if !ok || f.IsRoot() {
			return nil
		}
		pos[cur] = len(path)
		path = append(path, cur)
		cur = *f.ParentID
	}
}
