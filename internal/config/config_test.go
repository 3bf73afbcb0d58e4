package config_test

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gotruss/internal/assembly"
	"github.com/alexiusacademia/gotruss/internal/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Presets", func() {
	It("defaults to the all-steel hand calculation", func() {
		f := config.Default()
		Expect(f.SafetyFactor).To(Equal(2.5))
		Expect(f.OutputDir).To(Equal(config.DefaultOutputDir))
		Expect(f.Members).To(HaveLen(4))
		Expect(f.Members["AC"].Length).To(Equal(15.0))
		for _, spec := range f.Members {
			Expect(spec.Material).To(Equal("steel"))
		}
	})

	It("provides the materials-table variant", func() {
		f := config.Preset("Catalog")
		Expect(f).NotTo(BeNil())
		Expect(f.SafetyFactor).To(Equal(3.0))
		Expect(f.Members["AC"].Material).To(Equal("6061-T6"))
		Expect(f.Members["EB"].Length).To(Equal(36.0))
	})

	It("returns nil for an unknown preset", func() {
		Expect(config.Preset("bridge")).To(BeNil())
	})

	It("lists presets alphabetically", func() {
		Expect(config.ListPresets()).To(Equal([]string{"basic", "catalog"}))
	})

	It("hands out independent copies", func() {
		a := config.Default()
		a.Members["AC"] = assembly.MemberSpec{Length: 1}
		Expect(config.Default().Members["AC"].Length).To(Equal(15.0))
	})
})

var _ = Describe("Decode", func() {
	It("overrides only the keys that are present", func() {
		f, err := config.Decode(strings.NewReader(`
safety_factor: 3.5
members:
  ac:
    length: 20
`), config.Default())
		Expect(err).NotTo(HaveOccurred())
		Expect(f.SafetyFactor).To(Equal(3.5))
		Expect(f.Members["AC"].Length).To(Equal(20.0))
		Expect(f.Members["AC"].Diameter).To(Equal(0.375))
		Expect(f.Members["AC"].Material).To(Equal("steel"))
	})

	It("does not modify the base", func() {
		base := config.Default()
		_, err := config.Decode(strings.NewReader("members: {EB: {material: aluminum}}"), base)
		Expect(err).NotTo(HaveOccurred())
		Expect(base.Members["EB"].Material).To(Equal("steel"))
	})

	It("switches preset but keeps output settings", func() {
		base := config.Default()
		base.OutputDir = "runs"
		f, err := config.Decode(strings.NewReader("preset: catalog\n"), base)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.SafetyFactor).To(Equal(3.0))
		Expect(f.OutputDir).To(Equal("runs"))
	})

	It("accepts an empty document", func() {
		f, err := config.Decode(strings.NewReader(""), config.Default())
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(Equal(config.Default()))
	})

	DescribeTable("rejects bad documents",
		func(doc, want string) {
			_, err := config.Decode(strings.NewReader(doc), config.Default())
			Expect(err).To(MatchError(ContainSubstring(want)))
		},
		Entry("unknown key", "safety: 2\n", "field safety not found"),
		Entry("unknown member", "members: {XY: {length: 1}}\n", `unknown member "XY"`),
		Entry("unknown preset", "preset: bridge\n", `unknown preset "bridge"`),
		Entry("wrong type", "safety_factor: high\n", "parsing config"),
		Entry("member under two spellings", "members:\n  ABCD: {length: 40}\n  abcd: {length: 50}\n", "member ABCD is defined twice"),
	)

	It("rejects a member under two spellings on every attempt", func() {
		doc := "members:\n  AC: {length: 10}\n  ac: {length: 12}\n"
		for i := 0; i < 50; i++ {
			f, err := config.Decode(strings.NewReader(doc), config.Default())
			Expect(err).To(MatchError(ContainSubstring("member AC is defined twice")))
			Expect(f).To(BeNil())
		}
	})
})

var _ = Describe("Load and Save", func() {
	It("round-trips through a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "gotruss.yaml")
		want := config.Preset("catalog")
		want.Materials = "materials.csv"
		Expect(config.Save(path, want)).To(Succeed())

		got, err := config.Load(path, config.Default())
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
	})

	It("names the file in errors", func() {
		path := filepath.Join(GinkgoT().TempDir(), "bad.yaml")
		Expect(os.WriteFile(path, []byte("members: [1, 2]\n"), 0644)).To(Succeed())
		_, err := config.Load(path, config.Default())
		Expect(err).To(MatchError(ContainSubstring("bad.yaml")))
	})
})

var _ = Describe("Build", func() {
	It("produces a valid calculation input", func() {
		cfg, err := config.Default().Build()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.SafetyFactor).To(Equal(2.5))
		Expect(cfg.Spec(assembly.ABCD).Length).To(Equal(60.0))
		Expect(cfg.Spec(assembly.FD).Diameter).To(Equal(0.5))
	})

	It("reports missing members", func() {
		f := config.Default()
		delete(f.Members, "EB")
		delete(f.Members, "FD")
		_, err := f.Build()
		Expect(err).To(MatchError("config is missing members: EB, FD"))
	})

	It("rejects a member defined twice under different case", func() {
		f := config.Default()
		f.Members["abcd"] = f.Members["ABCD"]
		_, err := f.Build()
		Expect(err).To(MatchError(ContainSubstring("defined twice")))
	})

	It("surfaces geometry errors as configuration errors", func() {
		f := config.Default()
		Expect(f.SetMember(assembly.AC, "length", 30.0)).To(Succeed())
		_, err := f.Build()
		var cerr *assembly.ConfigError
		Expect(err).To(BeAssignableToTypeOf(cerr))
		Expect(err.Error()).To(ContainSubstring("AC length 30 in"))
	})

	It("validates SetMember input", func() {
		f := config.Default()
		Expect(f.SetMember(assembly.EB, "material", "aluminum")).To(Succeed())
		Expect(f.Members["EB"].Material).To(Equal("aluminum"))
		Expect(f.SetMember(assembly.EB, "length", "long")).NotTo(Succeed())
		Expect(f.SetMember(assembly.EB, "colour", "red")).NotTo(Succeed())
	})
})

var _ = Describe("Environment", func() {
	BeforeEach(func() {
		for _, k := range []string{config.EnvOutputDir, config.EnvMaterials, config.EnvSafetyFactor, config.EnvPreset} {
			GinkgoT().Setenv(k, "")
		}
	})

	It("applies environment defaults", func() {
		GinkgoT().Setenv(config.EnvPreset, "catalog")
		GinkgoT().Setenv(config.EnvOutputDir, "/tmp/runs")
		GinkgoT().Setenv(config.EnvSafetyFactor, "4")
		f, err := config.FromEnv()
		Expect(err).NotTo(HaveOccurred())
		Expect(f.OutputDir).To(Equal("/tmp/runs"))
		Expect(f.SafetyFactor).To(Equal(4.0))
		Expect(f.Members["AC"].Material).To(Equal("6061-T6"))
	})

	It("rejects a malformed safety factor", func() {
		GinkgoT().Setenv(config.EnvSafetyFactor, "lots")
		_, err := config.FromEnv()
		Expect(err).To(MatchError(ContainSubstring(config.EnvSafetyFactor)))
	})

	It("loads a .env file and skips missing ones", func() {
		dir := GinkgoT().TempDir()
		envFile := filepath.Join(dir, ".env")
		Expect(os.WriteFile(envFile, []byte("GOTRUSS_MATERIALS=parts.xlsx\n"), 0644)).To(Succeed())
		os.Unsetenv(config.EnvMaterials)

		Expect(config.LoadDotEnv(filepath.Join(dir, "missing.env"), envFile)).To(Succeed())
		f, err := config.FromEnv()
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Materials).To(Equal("parts.xlsx"))
	})
})
