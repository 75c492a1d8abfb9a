package daemon_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/neno/pkg/daemon"
)

var _ = Describe("Manager", func() {
	var tempDir string

	BeforeEach(func() {
		tempDir = GinkgoT().TempDir()
	})

	It("requires a directory", func() {
		_, err := daemon.NewManager("")
		Expect(err).To(HaveOccurred())
	})

	It("saves and loads state", func() {
		manager, err := daemon.NewManager(tempDir)
		Expect(err).NotTo(HaveOccurred())

		Expect(manager.SaveState(&daemon.State{
			PID:    123,
			User:   "ana",
			APIURL: "http://127.0.0.1:8787",
		})).To(Succeed())

		loaded, err := manager.LoadState()
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).NotTo(BeNil())
		Expect(loaded.PID).To(Equal(123))
		Expect(loaded.User).To(Equal("ana"))
		Expect(loaded.APIURL).To(Equal("http://127.0.0.1:8787"))
		Expect(loaded.Version).To(Equal(1))
		Expect(loaded.StartedAt).NotTo(BeZero())
	})

	It("returns nil state when nothing was saved", func() {
		manager, err := daemon.NewManager(tempDir)
		Expect(err).NotTo(HaveOccurred())

		loaded, err := manager.LoadState()
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(BeNil())
	})

	It("clears state", func() {
		manager, err := daemon.NewManager(tempDir)
		Expect(err).NotTo(HaveOccurred())

		Expect(manager.SaveState(&daemon.State{PID: 1})).To(Succeed())
		Expect(manager.ClearState()).To(Succeed())
		Expect(manager.ClearState()).To(Succeed())

		loaded, err := manager.LoadState()
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(BeNil())
	})

	It("refuses a second lock until the first is released", func() {
		manager, err := daemon.NewManager(tempDir)
		Expect(err).NotTo(HaveOccurred())

		lock, err := manager.Lock()
		Expect(err).NotTo(HaveOccurred())
		Expect(manager.Running()).To(BeTrue())

		_, err = manager.Lock()
		Expect(err).To(MatchError(daemon.ErrAlreadyRunning))

		Expect(lock.Release()).To(Succeed())
		Expect(manager.Running()).To(BeFalse())
	})

	It("hands the lock to the next instance after release", func() {
		manager, err := daemon.NewManager(tempDir)
		Expect(err).NotTo(HaveOccurred())

		first, err := manager.Lock()
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Release()).To(Succeed())

		second, err := manager.Lock()
		Expect(err).NotTo(HaveOccurred())
		Expect(manager.Running()).To(BeTrue())
		Expect(second.Release()).To(Succeed())

		var none *daemon.Lock
		Expect(none.Release()).To(Succeed())
	})
})
