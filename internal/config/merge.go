package config

import "fmt"

// Merge combines two configs where overlay takes precedence over base.
//   - version: must agree if both declare it (non-zero); fatal error on mismatch
//   - image_extensions: overlay list replaces base list when non-empty
//   - scalar fields: non-zero overlay values win
func Merge(base, overlay *Config) (*Config, error) {
	if base == nil {
		return overlay, nil
	}
	if overlay == nil {
		return base, nil
	}

	result := &Config{}

	if err := mergeVersion(base.Version, overlay.Version, &result.Version); err != nil {
		return nil, err
	}

	result.ImageExtensions = base.ImageExtensions
	if len(overlay.ImageExtensions) > 0 {
		result.ImageExtensions = append([]string(nil), overlay.ImageExtensions...)
	}

	result.Git = Git{
		DefaultBranch:    pick(base.Git.DefaultBranch, overlay.Git.DefaultBranch),
		DefaultRemoteURL: pick(base.Git.DefaultRemoteURL, overlay.Git.DefaultRemoteURL),
	}
	result.Directories = Directories{
		RemoveHelper: pick(base.Directories.RemoveHelper, overlay.Directories.RemoveHelper),
	}
	result.Build = Build{
		Script:       pick(base.Build.Script, overlay.Build.Script),
		MakeTool:     pick(base.Build.MakeTool, overlay.Build.MakeTool),
		PreBuildJobs: pickInt(base.Build.PreBuildJobs, overlay.Build.PreBuildJobs),
		AllJobs:      pickInt(base.Build.AllJobs, overlay.Build.AllJobs),
	}
	result.Mail = Mail{
		Server:         pick(base.Mail.Server, overlay.Mail.Server),
		Sender:         pick(base.Mail.Sender, overlay.Mail.Sender),
		RecipientsFile: pick(base.Mail.RecipientsFile, overlay.Mail.RecipientsFile),
		WindowsTool:    pick(base.Mail.WindowsTool, overlay.Mail.WindowsTool),
		UnixTool:       pick(base.Mail.UnixTool, overlay.Mail.UnixTool),
	}

	return result, nil
}

// MergeAll merges multiple configs in order (lowest precedence first).
// Returns an error if any version mismatch is found.
func MergeAll(configs []*Config) (*Config, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no configs to merge")
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		var err error
		result, err = Merge(result, configs[i])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func mergeVersion(base, overlay int, out *int) error {
	switch {
	case base == 0 && overlay == 0:
		*out = 0 // neither declares; validation will catch this
	case base == 0:
		*out = overlay
	case overlay == 0:
		*out = base
	case base == overlay:
		*out = base
	default:
		return fmt.Errorf("config version mismatch: one layer declares version %d, another declares version %d — all config layers must agree on version", base, overlay)
	}
	return nil
}

func pick(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

func pickInt(base, overlay int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}
