package servecmder_test

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/spf13/cobra"

	servecmder "github.com/papercomputeco/neno/cmd/neno/serve"
	"github.com/papercomputeco/neno/pkg/daemon"
)

func freeAddr() string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).NotTo(HaveOccurred())
	defer l.Close()
	return l.Addr().String()
}

var _ = Describe("Serve command", func() {
	var (
		tmpDir  string
		userDir string
		out     *gbytes.Buffer
	)

	newRoot := func(args ...string) *cobra.Command {
		root := &cobra.Command{Use: "neno", SilenceUsage: true, SilenceErrors: true}
		root.PersistentFlags().String("config-dir", tmpDir, "")
		root.PersistentFlags().Bool("debug", false, "")
		root.AddCommand(servecmder.NewServeCmd())

		out = gbytes.NewBuffer()
		root.SetOut(out)
		root.SetErr(gbytes.NewBuffer())
		root.SetArgs(append([]string{"serve", "--user", "tester", "--env-file", "", "--poll-interval", "50ms"}, args...))
		return root
	}

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		userDir = filepath.Join(tmpDir, "users", "tester")
		Expect(os.MkdirAll(userDir, 0o755)).To(Succeed())

		reminders := `[{"id": "due", "text": "tomar la pastilla", "when": "01/01/2020 09:00", "repeat": null, "notified": false}]`
		Expect(os.WriteFile(filepath.Join(userDir, "reminders.json"), []byte(reminders), 0o644)).To(Succeed())
	})

	It("announces due reminders, serves the API and cleans up on shutdown", func() {
		addr := freeAddr()
		root := newRoot("--listen", addr)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- root.ExecuteContext(ctx)
		}()

		Eventually(out).Should(gbytes.Say("Hola tester"))
		Eventually(out, 5*time.Second).Should(gbytes.Say("tomar la pastilla"))

		Eventually(func() int {
			resp, err := http.Get("http://" + addr + "/ping")
			if err != nil {
				return 0
			}
			resp.Body.Close()
			return resp.StatusCode
		}, 5*time.Second).Should(Equal(http.StatusOK))

		manager, err := daemon.NewManager(userDir)
		Expect(err).NotTo(HaveOccurred())
		state, err := manager.LoadState()
		Expect(err).NotTo(HaveOccurred())
		Expect(state).NotTo(BeNil())
		Expect(state.APIURL).To(Equal("http://" + addr))
		Expect(manager.Running()).To(BeTrue())

		Eventually(func() string {
			data, _ := os.ReadFile(filepath.Join(userDir, "reminders.json"))
			return string(data)
		}).Should(ContainSubstring(`"notified": true`))

		cancel()
		Eventually(done, 5*time.Second).Should(Receive(BeNil()))

		state, err = manager.LoadState()
		Expect(err).NotTo(HaveOccurred())
		Expect(state).To(BeNil())
		Expect(manager.Running()).To(BeFalse())
	})

	It("tees logs into a JSON file and appends events to the events log", func() {
		logFile := filepath.Join(tmpDir, "logs", "serve.log")
		eventsLog := filepath.Join(tmpDir, "logs", "events.jsonl")
		root := newRoot("--no-api", "--log-file", logFile, "--events-log", eventsLog)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- root.ExecuteContext(ctx)
		}()

		Eventually(out, 5*time.Second).Should(gbytes.Say("tomar la pastilla"))
		Eventually(func() string {
			data, _ := os.ReadFile(eventsLog)
			return string(data)
		}, 5*time.Second).Should(ContainSubstring(`"event_type":"neno.reminder.fired"`))

		cancel()
		Eventually(done, 5*time.Second).Should(Receive(BeNil()))

		data, err := os.ReadFile(logFile)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"msg":"shutting down"`))
		Expect(string(data)).To(ContainSubstring(`"source":`))
	})

	It("refuses to start a second instance for the same user", func() {
		manager, err := daemon.NewManager(userDir)
		Expect(err).NotTo(HaveOccurred())
		lock, err := manager.Lock()
		Expect(err).NotTo(HaveOccurred())
		defer lock.Release()

		err = newRoot("--no-api").Execute()
		Expect(err).To(MatchError(daemon.ErrAlreadyRunning))
	})
})
