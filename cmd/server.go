package cmd

import (
	"fmt"
	"net/url"
	"sort"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"speedprobe/pkg/ui"
)

// serverCmd represents the server command group
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage named test servers",
	Long: `Manage the named servers defined in the config file.

Named servers let you switch targets without retyping URLs:
  speedprobe server add home http://192.168.1.10:8000
  speedprobe server use home
  speedprobe ping`,
	RunE: runServerList,
}

var serverAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a named server",
	Args:  cobra.ExactArgs(2),
	RunE:  runServerAdd,
}

var serverRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a named server (alias: rm)",
	Args:    cobra.ExactArgs(1),
	RunE:    runServerRemove,
}

var serverUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Set the default server, interactively if no name given",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServerUse,
}

func init() {
	serverCmd.AddCommand(serverAddCmd)
	serverCmd.AddCommand(serverRemoveCmd)
	serverCmd.AddCommand(serverUseCmd)
}

func runServerList(cmd *cobra.Command, args []string) error {
	if useJSON() {
		return printJSON(map[string]any{
			"default": appConfig.DefaultServer,
			"servers": appConfig.Servers,
		})
	}

	if len(appConfig.Servers) == 0 {
		fmt.Println(ui.FormatWarning("No named servers defined"))
		fmt.Println(ui.FormatMuted("Add one with: speedprobe server add <name> <url>"))
		return nil
	}

	fmt.Println(ui.FormatTitle("Servers"))
	fmt.Println()

	for _, name := range sortedServerNames() {
		marker := "  "
		if name == appConfig.DefaultServer {
			marker = ui.StyleSuccess.Render("* ")
		}
		fmt.Printf("%s%s\n", marker, ui.RenderKeyValue(name, appConfig.Servers[name]))
	}
	return nil
}

func runServerAdd(cmd *cobra.Command, args []string) error {
	name, raw := args[0], args[1]

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid server URL %q, expected http(s)://host[:port]", raw)
	}

	appConfig.Servers[name] = raw
	if err := appConfig.Save(appDir.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Server '%s' added", name)))
	return nil
}

func runServerRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	if _, ok := appConfig.Servers[name]; !ok {
		return fmt.Errorf("unknown server %q", name)
	}

	delete(appConfig.Servers, name)
	if appConfig.DefaultServer == name {
		appConfig.DefaultServer = ""
	}
	if err := appConfig.Save(appDir.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Server '%s' removed", name)))
	return nil
}

func runServerUse(cmd *cobra.Command, args []string) error {
	if len(appConfig.Servers) == 0 {
		fmt.Println(ui.FormatWarning("No named servers defined"))
		fmt.Println(ui.FormatMuted("Add one with: speedprobe server add <name> <url>"))
		return nil
	}

	var name string
	if len(args) > 0 {
		name = args[0]
		if _, ok := appConfig.Servers[name]; !ok {
			return fmt.Errorf("unknown server %q", name)
		}
	} else {
		names := sortedServerNames()
		idx, err := fuzzyfinder.Find(
			names,
			func(i int) string { return names[i] },
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				return fmt.Sprintf("Server: %s\nURL: %s", names[i], appConfig.Servers[names[i]])
			}),
		)
		if err != nil {
			// Selection aborted
			return nil
		}
		name = names[idx]
	}

	appConfig.DefaultServer = name
	if err := appConfig.Save(appDir.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Default server set to '%s' (%s)", name, appConfig.Servers[name])))
	return nil
}

func sortedServerNames() []string {
	names := make([]string, 0, len(appConfig.Servers))
	for name := range appConfig.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
