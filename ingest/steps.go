package ingest

import (
	"context"
	"fmt"

	"github.com/zero-day-ai/jamfgraph"
	"github.com/zero-day-ai/jamfgraph/convert"
	"github.com/zero-day-ai/jamfgraph/graph"
	"github.com/zero-day-ai/jamfgraph/jamf"
	"github.com/zero-day-ai/jamfgraph/profile"
)

// Step IDs of the default ingestion run.
const (
	StepAccount               = "account"
	StepUsers                 = "users"
	StepAdmins                = "admins"
	StepMobileDevices         = "mobile-devices"
	StepConfigurationProfiles = "configuration-profiles"
	StepComputers             = "computers"
)

// DefaultSteps returns the full ingestion step set. Every collection step
// depends on the account step for the root entity; the computers step
// additionally depends on the parsed profile map from the
// configuration-profiles step.
func DefaultSteps() []Step {
	return []Step{
		{ID: StepAccount, Name: "Create account", Execute: executeAccount},
		{ID: StepUsers, Name: "Fetch users", DependsOn: []string{StepAccount}, Execute: executeUsers},
		{ID: StepAdmins, Name: "Fetch admins and groups", DependsOn: []string{StepAccount}, Execute: executeAdmins},
		{ID: StepMobileDevices, Name: "Fetch mobile devices", DependsOn: []string{StepAccount}, Execute: executeMobileDevices},
		{ID: StepConfigurationProfiles, Name: "Fetch configuration profiles", DependsOn: []string{StepAccount}, Execute: executeConfigurationProfiles},
		{ID: StepComputers, Name: "Fetch computers", DependsOn: []string{StepAccount, StepConfigurationProfiles}, Execute: executeComputers},
	}
}

func executeAccount(ctx context.Context, ic *Context) error {
	return ic.AddEntity(ctx, convert.AccountEntity(ic.Account))
}

func executeUsers(ctx context.Context, ic *Context) error {
	const op = "ingest.executeUsers"

	account, err := ic.accountEntity(ctx, op)
	if err != nil {
		return err
	}

	users, err := ic.Client.FetchUsers(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		userEntity := convert.UserEntity(u)
		if err := ic.AddEntity(ctx, userEntity); err != nil {
			return err
		}
		if err := ic.AddRelationship(ctx, convert.DirectRelationship(graph.ClassHas, account, userEntity)); err != nil {
			return err
		}
		for _, rel := range convert.UserComputerRelationships(u) {
			if err := ic.AddRelationship(ctx, rel); err != nil {
				return err
			}
		}
	}

	ic.Logger.Info("users ingested", "count", len(users))
	return nil
}

func executeAdmins(ctx context.Context, ic *Context) error {
	const op = "ingest.executeAdmins"

	account, err := ic.accountEntity(ctx, op)
	if err != nil {
		return err
	}

	accounts, err := ic.Client.FetchAccounts(ctx)
	if err != nil {
		return err
	}

	for _, ref := range accounts.Users {
		admin, err := ic.Client.FetchAccountUserByID(ctx, ref.ID)
		if err != nil {
			return err
		}
		adminEntity := convert.AdminEntity(*admin)
		if err := ic.AddEntity(ctx, adminEntity); err != nil {
			return err
		}
		if err := ic.AddRelationship(ctx, convert.DirectRelationship(graph.ClassHas, account, adminEntity)); err != nil {
			return err
		}
	}

	for _, ref := range accounts.Groups {
		group, err := ic.Client.FetchAccountGroupByID(ctx, ref.ID)
		if err != nil {
			return err
		}
		groupEntity := convert.GroupEntity(*group)
		if err := ic.AddEntity(ctx, groupEntity); err != nil {
			return err
		}
		if err := ic.AddRelationship(ctx, convert.DirectRelationship(graph.ClassHas, account, groupEntity)); err != nil {
			return err
		}
		for _, rel := range convert.GroupAdminRelationships(account, groupEntity, *group) {
			if err := ic.AddRelationship(ctx, rel); err != nil {
				return err
			}
		}
	}

	ic.Logger.Info("admins ingested", "admins", len(accounts.Users), "groups", len(accounts.Groups))
	return nil
}

func executeMobileDevices(ctx context.Context, ic *Context) error {
	const op = "ingest.executeMobileDevices"

	account, err := ic.accountEntity(ctx, op)
	if err != nil {
		return err
	}

	devices, err := ic.Client.FetchMobileDevices(ctx)
	if err != nil {
		return err
	}

	for _, d := range devices {
		deviceEntity := convert.MobileDeviceEntity(d)
		if err := ic.AddEntity(ctx, deviceEntity); err != nil {
			return err
		}
		if err := ic.AddRelationship(ctx, convert.DirectRelationship(graph.ClassHas, account, deviceEntity)); err != nil {
			return err
		}
	}

	ic.Logger.Info("mobile devices ingested", "count", len(devices))
	return nil
}

// executeConfigurationProfiles fetches every profile detail, parses the
// embedded plist payload, and hands the parsed map to the computers step
// through job state. A profile whose payload fails to parse still becomes an
// entity; it is only omitted from the map, so computers referencing it carry
// no posture from it.
func executeConfigurationProfiles(ctx context.Context, ic *Context) error {
	const op = "ingest.executeConfigurationProfiles"

	account, err := ic.accountEntity(ctx, op)
	if err != nil {
		return err
	}

	profiles, err := ic.Client.FetchConfigurationProfiles(ctx)
	if err != nil {
		return err
	}

	parsedByID := make(map[int]*profile.Parsed, len(profiles))
	for _, p := range profiles {
		detail, err := ic.Client.FetchConfigurationProfileByID(ctx, p.ID)
		if err != nil {
			return err
		}

		parsed, parseErr := profile.Parse(detail.General.Payloads)
		if parseErr != nil {
			ic.Logger.Warn("configuration profile payload failed to parse",
				"profile_id", p.ID,
				"profile_name", detail.General.Name,
				"error", parseErr)
			parsed = nil
		} else {
			parsedByID[detail.General.ID] = parsed
		}

		profileEntity := convert.ConfigurationProfileEntity(*detail, parsed)
		if err := ic.AddEntity(ctx, profileEntity); err != nil {
			return err
		}
		if err := ic.AddRelationship(ctx, convert.DirectRelationship(graph.ClassHas, account, profileEntity)); err != nil {
			return err
		}
	}

	if err := ic.State.SetData(ctx, DataKeyParsedProfiles, parsedByID); err != nil {
		return err
	}

	ic.Logger.Info("configuration profiles ingested",
		"count", len(profiles), "parsed", len(parsedByID))
	return nil
}

// executeComputers ingests the computer fleet. A failing per-computer detail
// fetch drops that computer from the run entirely; the step keeps going and
// reports a single aggregate error afterwards so operators see one alert
// with success and failure counts instead of one per computer.
func executeComputers(ctx context.Context, ic *Context) error {
	const op = "ingest.executeComputers"

	account, err := ic.accountEntity(ctx, op)
	if err != nil {
		return err
	}

	profilesByID := make(map[int]*profile.Parsed)
	if err := ic.State.GetData(ctx, DataKeyParsedProfiles, &profilesByID); err != nil {
		return jamfgraph.NewExecutionError(op, jamfgraph.CodeConfigurationDetailsNotFound,
			fmt.Errorf("%w: parsed configuration profiles: %v", jamfgraph.ErrMissingDependency, err))
	}

	computers, err := ic.Client.FetchComputers(ctx)
	if err != nil {
		return err
	}

	set := convert.NewRelationshipSet()
	succeeded, failed := 0, 0

	for _, c := range computers {
		detail, err := ic.Client.FetchComputerByID(ctx, c.ID)
		if err != nil {
			ic.Logger.Error("computer detail fetch failed",
				"computer_id", c.ID, "computer_name", c.Name, "error", err)
			ic.Metrics.AddDetailFailures(ctx, 1)
			failed++
			continue
		}

		computerEntity := convert.ComputerEntity(c, profilesByID, detail)
		if err := ic.AddEntity(ctx, computerEntity); err != nil {
			return err
		}
		if err := ic.AddRelationship(ctx, convert.DirectRelationship(graph.ClassHas, account, computerEntity)); err != nil {
			return err
		}

		if err := ic.addProfileUses(ctx, computerEntity, detail, set); err != nil {
			return err
		}

		appEntities, appRels := convert.ApplicationRelationships(computerEntity, detail, set)
		for _, appEntity := range appEntities {
			if err := ic.AddEntity(ctx, appEntity); err != nil {
				return err
			}
		}
		for _, rel := range appRels {
			if err := ic.AddRelationship(ctx, rel); err != nil {
				return err
			}
		}

		succeeded++
	}

	if dups := set.Duplicates(); len(dups) > 0 {
		ic.Logger.Warn("duplicate relationships suppressed", "count", len(dups), "keys", dups)
		ic.Metrics.AddDuplicates(ctx, int64(len(dups)))
	}

	ic.Logger.Info("computers ingested", "succeeded", succeeded, "failed", failed)

	if failed > 0 {
		return jamfgraph.NewExecutionError(op, jamfgraph.CodeComputerDetailFetch,
			jamfgraph.ErrFetchFailed).
			WithContext(map[string]any{"succeeded": succeeded, "failed": failed})
	}
	return nil
}

// addProfileUses links a computer to each configuration profile it
// references. The edge is only written when the profile entity exists; stale
// references to deleted profiles are logged and dropped. A profile ID listed
// twice on one computer yields one edge.
func (c *Context) addProfileUses(ctx context.Context, computerEntity *graph.Entity, detail *jamf.ComputerDetail, set *convert.RelationshipSet) error {
	unique, duplicates := convert.ComputerProfileIDs(detail)
	if len(duplicates) > 0 {
		c.Logger.Warn("computer references configuration profiles more than once",
			"computer_key", computerEntity.Key, "profile_ids", duplicates)
	}

	for _, id := range unique {
		profileKey := graph.EntityKey(convert.ConfigurationProfileEntityType, id)
		profileEntity, err := c.State.FindEntity(ctx, profileKey)
		if err != nil {
			c.Logger.Warn("computer references unknown configuration profile",
				"computer_key", computerEntity.Key, "profile_id", id)
			continue
		}

		rel := convert.DirectRelationship(graph.ClassUses, computerEntity, profileEntity)
		if !set.Add(rel) {
			continue
		}
		if err := c.AddRelationship(ctx, rel); err != nil {
			return err
		}
	}
	return nil
}
