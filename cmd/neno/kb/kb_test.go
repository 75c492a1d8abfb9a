package kbcmder_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	kbcmder "github.com/papercomputeco/neno/cmd/neno/kb"
)

var _ = Describe("Kb command", func() {
	var (
		tmpDir string
		out    *bytes.Buffer
	)

	run := func(args ...string) error {
		root := &cobra.Command{Use: "neno"}
		root.PersistentFlags().String("config-dir", tmpDir, "")
		root.PersistentFlags().Bool("debug", false, "")
		root.AddCommand(kbcmder.NewKBCmd())

		out = &bytes.Buffer{}
		root.SetOut(out)
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(append([]string{"kb"}, args...))
		return root.Execute()
	}

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	It("prints the file path and seeds the defaults", func() {
		Expect(run("path")).To(Succeed())

		path := filepath.Join(tmpDir, "knowledge_base.json")
		Expect(out.String()).To(Equal(path + "\n"))
		Expect(path).To(BeAnExistingFile())
	})

	It("lists the entries of an edited file", func() {
		content := `[
  {"triggers": ["horario de la farmacia"], "answer": "La farmacia abre de 9 a 21."},
  {"keywords": ["wifi", "clave"], "answer": "La clave del wifi está en el router."}
]`
		Expect(os.WriteFile(filepath.Join(tmpDir, "knowledge_base.json"), []byte(content), 0o644)).To(Succeed())

		Expect(run("list", "--plain")).To(Succeed())
		Expect(out.String()).To(ContainSubstring("(2 entradas)"))
		Expect(out.String()).To(ContainSubstring(`Frases: "horario de la farmacia"`))
		Expect(out.String()).To(ContainSubstring(`Palabras: "wifi" + "clave"`))
		Expect(out.String()).To(ContainSubstring("La farmacia abre de 9 a 21."))
	})
})
