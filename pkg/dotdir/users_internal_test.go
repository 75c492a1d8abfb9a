package dotdir

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("copyFile", func() {
	It("removes the destination when the copy fails", func() {
		dir := GinkgoT().TempDir()

		// Reading a directory fails after the destination was created.
		src := filepath.Join(dir, "reminders.json")
		Expect(os.Mkdir(src, 0o755)).To(Succeed())
		dst := filepath.Join(dir, "copy.json")

		Expect(copyFile(src, dst)).NotTo(Succeed())

		_, err := os.Stat(dst)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("copies the content", func() {
		dir := GinkgoT().TempDir()
		src := filepath.Join(dir, "facts.json")
		Expect(os.WriteFile(src, []byte(`{"nombre":"Ana"}`), 0o644)).To(Succeed())
		dst := filepath.Join(dir, "copy.json")

		Expect(copyFile(src, dst)).To(Succeed())
		Expect(os.ReadFile(dst)).To(Equal([]byte(`{"nombre":"Ana"}`)))
	})
})
