package apilytics

import (
	"fmt"
	"runtime"
	"strings"
)

// Version is the version of this library, reported to the collector in the
// Apilytics-Version header.
const Version = "1.0.0"

const defaultIntegration = "apilytics-go-core"

// versionHeader renders the Apilytics-Version header value:
// "{integration}/{version};go/{go-version};{library};{platform}".
// The library part is empty when the core is used without a framework
// adapter.
func versionHeader(integration, library string) string {
	if integration == "" {
		integration = defaultIntegration
	}
	goVersion := strings.TrimPrefix(runtime.Version(), "go")
	return fmt.Sprintf("%s/%s;go/%s;%s;%s", integration, Version, goVersion, library, runtime.GOOS)
}
