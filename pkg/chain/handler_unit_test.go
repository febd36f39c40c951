//go:build unit

package chain

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Resolution chain", func() {
	var tempDir string

	BeforeEach(func() {
		tempDir = GinkgoT().TempDir()
	})

	Context("FileHandler", func() {
		It("should return the whole file for any key", func() {
			path := filepath.Join(tempDir, "value.txt")
			Expect(os.WriteFile(path, []byte("file-value\n"), 0600)).To(Succeed())

			handler := NewFileHandler(path)
			valueA, okA := handler.Handle("a")
			valueB, okB := handler.Handle("b")
			Expect(okA).To(BeTrue())
			Expect(okB).To(BeTrue())
			Expect(valueA).To(Equal("file-value"))
			Expect(valueB).To(Equal(valueA))
		})

		It("should stay silent for an unreadable file", func() {
			handler := NewFileHandler(filepath.Join(tempDir, "missing.txt"))
			_, ok := handler.Handle("any")
			Expect(ok).To(BeFalse())
		})
	})

	Context("JSONFileHandler", func() {
		It("should find keys nested below the top level", func() {
			path := filepath.Join(tempDir, "conf.json")
			Expect(os.WriteFile(path, []byte(`{"outer": {"inner_key": "deep"}}`), 0600)).To(Succeed())

			value, ok := NewJSONFileHandler(path).Handle("inner_key")
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal("deep"))
		})

		It("should fall through to the successor on a parse failure", func() {
			path := filepath.Join(tempDir, "broken.json")
			Expect(os.WriteFile(path, []byte(`{"broken":`), 0600)).To(Succeed())

			handler := NewJSONFileHandler(path).Next(NewDefaultHandler("fallback"))
			value, ok := handler.Handle("broken")
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal("fallback"))
		})
	})

	Context("assembled chains", func() {
		It("should resolve from the first source that answers", func() {
			jsonPath := filepath.Join(tempDir, "conf.json")
			Expect(os.WriteFile(jsonPath, []byte(`{"verbosity": "debug"}`), 0600)).To(Succeed())

			handler := NewEnvHandler().Prefix("CHAIN_UNIT_").
				Next(NewJSONFileHandler(jsonPath).
					Next(NewDefaultHandler("trace")))

			value, ok := handler.Handle("verbosity")
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal("debug"))
		})

		It("should never report absence when backstopped by a default", func() {
			handler := NewEnvHandler().Prefix("CHAIN_UNIT_").
				Next(NewDefaultHandler("trace"))

			value, ok := handler.Handle("no_such_setting")
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal("trace"))
		})
	})
})
