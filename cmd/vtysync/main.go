// Vtysync - Routing Daemon Configuration Reconciler
//
// Reads a desired configuration text file, reads the daemon's current
// running configuration through vtysh, and converges the two by
// applying the minimal set of incremental configuration commands,
// without restarting the daemon.
//
//	vtysync --test /etc/quagga/Quagga.conf     # preview the deltas
//	vtysync --reload /etc/quagga/Quagga.conf   # apply the deltas
//
// Preview mode never mutates the daemon. Apply mode runs two
// convergence passes: negating a statement can make the daemon drop
// sibling statements sharing its prefix, and the second pass repairs
// that collateral damage.
package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/newtron-network/vtysync/pkg/audit"
	"github.com/newtron-network/vtysync/pkg/reload"
	"github.com/newtron-network/vtysync/pkg/settings"
	"github.com/newtron-network/vtysync/pkg/util"
	"github.com/newtron-network/vtysync/pkg/version"
	"github.com/newtron-network/vtysync/pkg/vtysh"
)

const defaultLogFile = "/var/log/vtysync/vtysync.log"

var (
	// Mode flags (exactly one required)
	reloadMode bool
	testMode   bool

	// Option flags
	inputFile string
	debugMode bool
	logFile   string
	vtyshPath string

	// Remote daemon flags
	host        string
	sshUser     string
	sshPassword string

	// Global state
	userSettings *settings.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "vtysync [flags] <config-file>",
	Short:         "Reconcile a routing daemon's running config with a config file",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Vtysync dynamically applies the diff between a configuration file and
the daemon's running configuration, via incremental vtysh commands.

  vtysync --test /etc/quagga/Quagga.conf     preview the deltas
  vtysync --reload /etc/quagga/Quagga.conf   apply the deltas`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		if inputFile != "" && !testMode {
			return fmt.Errorf("--input is only valid with --test")
		}
		if host == "" && (sshUser != "" || sshPassword != "") {
			return fmt.Errorf("--user/--password require --host")
		}

		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}

		// Apply defaults from settings
		if vtyshPath == "" {
			vtyshPath = userSettings.VtyshPath
		}
		if logFile == "" {
			logFile = userSettings.LogFile
		}
		if logFile == "" {
			logFile = defaultLogFile
		}
		if host == "" {
			host = userSettings.DefaultHost
		}
		if sshUser == "" {
			sshUser = userSettings.DefaultUser
		}

		if debugMode {
			util.SetLogLevel("debug")
		}

		// Test mode traces to stderr; reload mode keeps a persistent
		// trace of every config loaded and command attempted.
		if reloadMode {
			if err := util.SetLogFile(logFile); err != nil {
				return err
			}

			auditPath := filepath.Join(filepath.Dir(logFile), "audit.log")
			auditLogger, err := audit.NewFileLogger(auditPath, audit.RotationConfig{
				MaxSize:    10 * 1024 * 1024,
				MaxBackups: 5,
			})
			if err != nil {
				util.Warnf("Could not initialize audit logging: %v", err)
			} else {
				audit.SetDefaultLogger(auditLogger)
			}
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		engine, err := reload.New(client, args[0], reload.Options{
			Debug:       debugMode,
			RunningFile: inputFile,
			User:        currentUser(),
			Host:        host,
		})
		if err != nil {
			return err
		}

		if testMode {
			return engine.Preview(os.Stdout)
		}

		util.Infof("Called with args %v", os.Args[1:])
		return engine.Reload()
	},
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// newClient builds the vtysh client: local by default, SSH when a
// remote host is selected.
func newClient() vtysh.Client {
	if host != "" {
		return vtysh.NewSSHClient(host, sshUser, sshPassword, vtyshPath)
	}
	return vtysh.NewLocalClient(vtyshPath)
}

func init() {
	rootCmd.Flags().BoolVar(&reloadMode, "reload", false, "Apply the deltas")
	rootCmd.Flags().BoolVar(&testMode, "test", false, "Show the deltas")
	rootCmd.MarkFlagsOneRequired("reload", "test")
	rootCmd.MarkFlagsMutuallyExclusive("reload", "test")

	rootCmd.Flags().StringVar(&inputFile, "input", "", "Read running config from file instead of \"show running-config\" (test mode)")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debugs")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Reload-mode log location (default "+defaultLogFile+")")
	rootCmd.Flags().StringVar(&vtyshPath, "vtysh", "", "Path to the vtysh binary")

	rootCmd.Flags().StringVar(&host, "host", "", "Run vtysh on a remote host over SSH")
	rootCmd.Flags().StringVar(&sshUser, "user", "", "SSH user for --host")
	rootCmd.Flags().StringVar(&sshPassword, "password", "", "SSH password for --host")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vtysync %s\n", version.Info())
	},
}
