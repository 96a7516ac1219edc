package version

import (
	"fmt"
	"regexp"
	"runtime"
	"strconv"
)

const FMT_VERSTR = "v%v.%v.%v-%x"

var (
	// it is changed using ldflags.
	//  ex) -ldflags "... -X 'github.com/beatoz/fxseries/cmd/version.GitCommit=$(XXX)'"
	Version   string
	GitCommit string

	majorVer  uint64 = 0
	minorVer  uint64 = 1
	patchVer  uint64 = 0
	commitVer uint64 = 0
)

var verRegexp = regexp.MustCompile(`v(\d+)\.(\d+)\.(\d+)`)

func init() {
	if err := parseVersions(Version, GitCommit); err != nil {
		panic(err)
	}
}

func parseVersions(versionStr, gitCommit string) error {
	if versionStr == "" {
		return nil
	}

	matches := verRegexp.FindStringSubmatch(versionStr)
	if matches == nil {
		return fmt.Errorf("invalid version string: %v", versionStr)
	}
	majorVer, _ = strconv.ParseUint(matches[1], 10, 64)
	minorVer, _ = strconv.ParseUint(matches[2], 10, 64)
	patchVer, _ = strconv.ParseUint(matches[3], 10, 64)

	if gitCommit != "" {
		var err error
		commitVer, err = strconv.ParseUint(gitCommit, 16, 64)
		if err != nil {
			return fmt.Errorf("error: %v, invalid git commit: %v", err, gitCommit)
		}
	}
	return nil
}

func String() string {
	return fmt.Sprintf(FMT_VERSTR, majorVer, minorVer, patchVer, commitVer)
}

// Info is the machine readable form printed by `version --output json`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func Get() Info {
	return Info{
		Version:   String(),
		Commit:    strconv.FormatUint(commitVer, 16),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
