package statuscmder_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	statuscmder "github.com/papercomputeco/neno/cmd/neno/status"
	"github.com/papercomputeco/neno/pkg/daemon"
)

var _ = Describe("Status command", func() {
	var (
		tmpDir  string
		userDir string
		out     *bytes.Buffer
	)

	run := func() error {
		root := &cobra.Command{Use: "neno"}
		root.PersistentFlags().String("config-dir", tmpDir, "")
		root.PersistentFlags().Bool("debug", false, "")
		root.AddCommand(statuscmder.NewStatusCmd())

		out = &bytes.Buffer{}
		root.SetOut(out)
		root.SetErr(&bytes.Buffer{})
		root.SetArgs([]string{"status", "--user", "tester"})
		return root.Execute()
	}

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		userDir = filepath.Join(tmpDir, "users", "tester")
		Expect(os.MkdirAll(userDir, 0o755)).To(Succeed())

		reminders := `[
  {"id": "a", "text": "tomar la pastilla", "when": "20/10/2026 09:00", "repeat": "daily", "notified": false},
  {"id": "b", "text": "llamar a Luis", "when": "18/10/2026 18:30", "repeat": null, "notified": true}
]`
		Expect(os.WriteFile(filepath.Join(userDir, "reminders.json"), []byte(reminders), 0o644)).To(Succeed())
	})

	It("reports a stopped daemon and the reminder counts", func() {
		Expect(run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("tester"))
		Expect(out.String()).To(ContainSubstring("2 (1 pending)"))
		Expect(out.String()).To(ContainSubstring("stopped"))
	})

	It("reports a running daemon from its state file", func() {
		manager, err := daemon.NewManager(userDir)
		Expect(err).NotTo(HaveOccurred())

		lock, err := manager.Lock()
		Expect(err).NotTo(HaveOccurred())
		defer lock.Release()

		Expect(manager.SaveState(&daemon.State{
			PID:    4242,
			User:   "tester",
			APIURL: "http://127.0.0.1:8787",
		})).To(Succeed())

		Expect(run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("running (pid 4242"))
		Expect(out.String()).To(ContainSubstring("http://127.0.0.1:8787"))
	})
})
