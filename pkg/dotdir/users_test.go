package dotdir_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/neno/pkg/dotdir"
)

var _ = Describe("users", func() {
	var target string

	BeforeEach(func() {
		var err error
		target, err = os.MkdirTemp("", "dotdir-users-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(target) })
	})

	Describe("SanitizeUsername", func() {
		It("keeps safe characters", func() {
			Expect(dotdir.SanitizeUsername("ana.maria_01-x")).To(Equal("ana.maria_01-x"))
		})

		It("replaces unsafe characters with underscores", func() {
			Expect(dotdir.SanitizeUsername(`DOMAIN\josé`)).To(Equal("DOMAIN_jos_"))
		})

		It("falls back to default for an empty name", func() {
			Expect(dotdir.SanitizeUsername("")).To(Equal("default"))
		})
	})

	Describe("UserSlug", func() {
		It("prefers the NENO_USER override", func() {
			GinkgoT().Setenv("NENO_USER", "lucía garcía")
			Expect(dotdir.UserSlug()).To(Equal("luc_a_garc_a"))
		})

		It("uses ASSISTANT_USER when NENO_USER is unset", func() {
			GinkgoT().Setenv("NENO_USER", "")
			GinkgoT().Setenv("ASSISTANT_USER", "pepe")
			Expect(dotdir.UserSlug()).To(Equal("pepe"))
		})
	})

	Describe("UserDir", func() {
		It("creates users/<slug> under the target", func() {
			dir, err := dotdir.UserDir(target, "ana")
			Expect(err).NotTo(HaveOccurred())
			Expect(dir).To(Equal(filepath.Join(target, "users", "ana")))
			Expect(dir).To(BeADirectory())
		})
	})

	Describe("UserFile", func() {
		It("copies a shared legacy file into the user directory", func() {
			legacy := filepath.Join(target, dotdir.RemindersFile)
			Expect(os.WriteFile(legacy, []byte(`[{"text":"x"}]`), 0o644)).To(Succeed())

			path, err := dotdir.UserFile(target, "ana", dotdir.RemindersFile)
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(Equal(filepath.Join(target, "users", "ana", dotdir.RemindersFile)))

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(`[{"text":"x"}]`))
		})

		It("leaves an existing user file untouched", func() {
			dir, err := dotdir.UserDir(target, "ana")
			Expect(err).NotTo(HaveOccurred())
			Expect(os.WriteFile(filepath.Join(dir, dotdir.RemindersFile), []byte(`[]`), 0o644)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(target, dotdir.RemindersFile), []byte(`[{}]`), 0o644)).To(Succeed())

			path, err := dotdir.UserFile(target, "ana", dotdir.RemindersFile)
			Expect(err).NotTo(HaveOccurred())
			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(`[]`))
		})

		It("returns the path without creating the file when nothing can be migrated", func() {
			path, err := dotdir.UserFile(target, "ana", dotdir.HistoryFile)
			Expect(err).NotTo(HaveOccurred())
			Expect(path).NotTo(BeAnExistingFile())
		})
	})
})
