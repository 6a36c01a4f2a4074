package command

import (
	"encoding/json"
	"fmt"
	"runtime"

	"bitlink/config"

	"github.com/spf13/cobra"
)

type RuntimeInfo struct {
	Env       string `json:"env,omitempty"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

type VersionHandler struct {
	conf *config.Configuration
}

func NewVersionHandler(conf *config.Configuration) *VersionHandler {
	return &VersionHandler{conf: conf}
}

func (handler *VersionHandler) Info() RuntimeInfo {
	return RuntimeInfo{
		Env:       handler.conf.App.Env,
		Name:      handler.conf.App.Name,
		Version:   handler.conf.App.Version,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

func (handler *VersionHandler) Print(cmd *cobra.Command, asJSON bool) error {
	info := handler.Info()
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	fmt.Fprintf(out, "%s %s (%s, %s/%s)\n", info.Name, info.Version, info.GoVersion, info.OS, info.Arch)
	return nil
}
