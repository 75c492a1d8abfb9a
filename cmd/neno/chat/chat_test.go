package chatcmder_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	chatcmder "github.com/papercomputeco/neno/cmd/neno/chat"
)

var _ = Describe("Chat command", func() {
	var (
		tmpDir string
		out    *bytes.Buffer
	)

	run := func(input string, args ...string) error {
		root := &cobra.Command{Use: "neno"}
		root.PersistentFlags().String("config-dir", tmpDir, "")
		root.PersistentFlags().Bool("debug", false, "")
		root.AddCommand(chatcmder.NewChatCmd())

		out = &bytes.Buffer{}
		root.SetOut(out)
		root.SetErr(&bytes.Buffer{})
		root.SetIn(strings.NewReader(input))
		root.SetArgs(append([]string{"chat", "--user", "tester", "--env-file", ""}, args...))
		return root.Execute()
	}

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	It("greets the user and answers every line until salir", func() {
		Expect(run("me llamo Rosa\n\n¿cómo me llamo?\nsalir\nhola\n")).To(Succeed())

		Expect(out.String()).To(ContainSubstring("Hola tester"))
		Expect(out.String()).To(ContainSubstring("Encantado, Rosa."))
		Expect(out.String()).To(ContainSubstring("Me dijiste que te llamas Rosa."))
		Expect(out.String()).To(ContainSubstring("¡Hasta pronto!"))
		Expect(out.String()).NotTo(ContainSubstring("¡Hasta pronto! Que tengas un buen día."))
	})

	It("ends at end of input", func() {
		Expect(run("gracias\n")).To(Succeed())
		Expect(strings.Count(out.String(), "tú> ")).To(Equal(2))
	})

	It("keeps the exchange in the conversation history", func() {
		Expect(run("vivo en Sevilla\n")).To(Succeed())

		data, err := os.ReadFile(filepath.Join(tmpDir, "users", "tester", "conversation_history.json"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("vivo en Sevilla"))
	})

	It("explains how to set up free conversation when no provider is configured", func() {
		Expect(run("neno, charlemos\n")).To(Succeed())
		Expect(out.String()).To(ContainSubstring("neno> "))
		Expect(out.String()).NotTo(ContainSubstring("Estoy listo para charlar"))
	})

	It("fails on an unreadable env file", func() {
		dir := filepath.Join(tmpDir, "env-dir")
		Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
		Expect(run("", "--env-file", dir)).NotTo(Succeed())
	})
})
