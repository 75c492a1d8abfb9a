package configcmder_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/neno/cmd/neno/config"
	"github.com/papercomputeco/neno/pkg/config"
)

var _ = Describe("NewConfigCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := configcmder.NewConfigCmd()
		Expect(cmd.Use).To(Equal("config"))
	})

	It("has set, get, list and preset subcommands", func() {
		cmd := configcmder.NewConfigCmd()
		cmds := cmd.Commands()
		subcommands := make([]string, 0, len(cmds))
		for _, sub := range cmds {
			subcommands = append(subcommands, sub.Name())
		}
		Expect(subcommands).To(ContainElements("set", "get", "list", "preset"))
	})
})

var _ = Describe("Config command execution", func() {
	var (
		tmpDir string
		out    *bytes.Buffer
	)

	// run executes "config <args>" under a root carrying --config-dir.
	run := func(args ...string) error {
		root := &cobra.Command{Use: "neno"}
		root.PersistentFlags().String("config-dir", "", "")
		root.AddCommand(configcmder.NewConfigCmd())

		out = &bytes.Buffer{}
		root.SetOut(out)
		root.SetErr(out)
		root.SetArgs(append([]string{"config", "--config-dir", tmpDir}, args...))
		return root.Execute()
	}

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	Describe("set subcommand", func() {
		It("sets a config value successfully", func() {
			Expect(run("set", "chat.provider", "ollama")).To(Succeed())

			_, err := os.Stat(filepath.Join(tmpDir, "config.toml"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects unknown keys", func() {
			Expect(run("set", "invalid_key", "value")).To(MatchError(ContainSubstring("unknown config key")))
		})

		It("requires exactly two arguments", func() {
			Expect(run("set", "chat.provider")).NotTo(Succeed())
		})

		It("rejects invalid durations", func() {
			Expect(run("set", "scheduler.poll_interval", "often")).NotTo(Succeed())
		})

		It("rejects an unknown search engine", func() {
			Expect(run("set", "assistant.search_engine", "altavista")).NotTo(Succeed())
		})

		It("masks secrets in its output", func() {
			Expect(run("set", "chat.api_key", "sk-abcdef1234")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("****1234"))
			Expect(out.String()).NotTo(ContainSubstring("sk-abcdef1234"))
		})
	})

	Describe("get subcommand", func() {
		It("gets a previously set value", func() {
			Expect(run("set", "chat.model", "llama3.2")).To(Succeed())
			Expect(run("get", "chat.model")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("llama3.2"))
		})

		It("shows unset keys as not set", func() {
			Expect(run("get", "chat.provider")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("<not set>"))
		})

		It("rejects unknown keys", func() {
			Expect(run("get", "invalid_key")).NotTo(Succeed())
		})
	})

	Describe("list subcommand", func() {
		It("lists every key", func() {
			Expect(run("list")).To(Succeed())
			for _, key := range config.ValidConfigKeys() {
				Expect(out.String()).To(ContainSubstring(key))
			}
		})

		It("rejects any arguments", func() {
			Expect(run("list", "extra")).NotTo(Succeed())
		})
	})

	Describe("preset subcommand", func() {
		It("writes the chat section", func() {
			Expect(run("preset", "ollama")).To(Succeed())

			cfger, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Chat.Provider).To(Equal("ollama"))
			Expect(cfg.Chat.Model).To(Equal("llama3.2"))
		})

		It("hints at the API key for hosted providers", func() {
			Expect(run("preset", "anthropic")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("ANTHROPIC_API_KEY"))
		})

		It("rejects unknown presets", func() {
			Expect(run("preset", "parrot")).To(MatchError(ContainSubstring("unknown preset")))
		})
	})
})
