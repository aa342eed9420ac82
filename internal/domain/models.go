package domain

// OS is the operating-system family of a supported platform.
type OS string

// Arch is the CPU architecture of a supported platform.
type Arch string

const (
	OSLinux   OS = "linux"
	OSDarwin  OS = "darwin"
	OSWindows OS = "windows"

	ArchAMD64 Arch = "amd64"
	ArchARM64 Arch = "arm64"
)

// Platform identifies the host OS/arch pair. Computed once per run;
// detection failure is terminal, so a Platform value is always one of the
// five supported combinations.
type Platform struct {
	OS   OS
	Arch Arch
}

func (p Platform) String() string {
	return string(p.OS) + "/" + string(p.Arch)
}

// ArchiveKind is the unpacking strategy for a downloaded asset, selected
// once from the asset's filename extension.
type ArchiveKind int

const (
	// KindRaw means the download is the binary itself.
	KindRaw ArchiveKind = iota
	KindZip
	KindTar
)

// ReleaseAsset is a single downloadable file attached to a release.
type ReleaseAsset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// Release is a concrete release with its asset list.
type Release struct {
	TagName string         `json:"tag_name"`
	Assets  []ReleaseAsset `json:"assets"`
}

// Tool is a predefined registry entry mapping a short name to a GitHub
// repository.
type Tool struct {
	Name        string `json:"name"`
	Repo        string `json:"repo"`
	Description string `json:"description"`
}

// InstallRequest describes one install invocation.
type InstallRequest struct {
	// Repo is the owner/repo pair, already resolved from a tool name if
	// one was given.
	Repo string
	// Binary is the executable name to locate and install.
	Binary string
	// Version is a release tag, or empty for the latest release.
	Version string
	// Dir is the destination directory for the binary.
	Dir string
}

// InstallResult reports what an install actually did.
type InstallResult struct {
	Repo  string
	Tag   string
	Asset ReleaseAsset
	Path  string
}
