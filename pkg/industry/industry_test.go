package industry

import (
	"strings"
	"testing"

	"github.com/idesignres/iisim/pkg/expression"
	"github.com/idesignres/iisim/pkg/models"
	"github.com/idesignres/iisim/pkg/models/rendering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(name, units, operation string, args ...models.Arg) models.Item {
	return models.Item{
		BaseFields: models.BaseFields{Name: name, Description: name + " description", Units: units},
		Args:       args,
		Operation:  operation,
	}
}

func arg(name string, kind models.ArgKind) models.Arg {
	return models.Arg{Name: name, Kind: kind}
}

func cementMeta() *models.IndustryConfig {
	demand := models.Demand{
		Item: item("limestone_demand", "kt", "total_production * 1.035",
			arg("total_production", models.ArgOutcome)),
		Used: "mixing",
	}
	demand.Tests = []float64{103.5}

	return &models.IndustryConfig{
		ProcessConfig: models.ProcessConfig{
			Name:        "Cement industry",
			ShortName:   "cement",
			ID:          "cement",
			Category:    "industry",
			Description: "Cement production",
		},
		Outcome: models.Outcome{
			BaseFields: models.BaseFields{Name: "total_production", Description: "Cement produced", Units: "kt"},
			Tests:      []float64{100},
		},
		Demands: []models.Demand{demand},
	}
}

func mixingProcess(inputUnits string) *models.ProcessConfig {
	output := models.Output{Item: item("co2", "kt", "limestone_demand * 0.9",
		arg("limestone_demand", models.ArgInputs))}
	output.Tests = []float64{93.15}

	return &models.ProcessConfig{
		Name:        "Mixing",
		ShortName:   "mixing",
		ID:          "mixing",
		Category:    "process",
		Description: "Mixing of raw materials",
		Inputs: []models.Input{
			{BaseFields: models.BaseFields{Name: "limestone_demand", Units: inputUnits}},
		},
		Outputs: []models.Output{output},
	}
}

func cement(t *testing.T) *Industry {
	t.Helper()

	meta, err := NewMeta(cementMeta())
	require.NoError(t, err)

	mixing, err := NewProcess(mixingProcess("kt"))
	require.NoError(t, err)

	ind := New()
	ind.SetMeta(meta)
	require.NoError(t, ind.AddProcess("mixing", mixing))

	return ind
}

// chainProcess builds a process with one output named out, reading in from the
// process with id from when from is not empty
func chainProcess(t *testing.T, id, in, from, out string) *Process {
	t.Helper()

	cfg := &models.ProcessConfig{Name: id, ShortName: id, ID: id}
	operation := "1"
	var args []models.Arg
	if in != "" {
		cfg.Inputs = []models.Input{{
			BaseFields: models.BaseFields{Name: in, Units: "t"},
			From:       from,
		}}
		operation = in + " * 2"
		args = []models.Arg{arg(in, models.ArgInputs)}
	}
	cfg.Outputs = []models.Output{{Item: item(out, "t", operation, args...)}}

	p, err := NewProcess(cfg)
	require.NoError(t, err)
	return p
}

func TestNewProcess(t *testing.T) {
	t.Run("compiles outputs", func(t *testing.T) {
		p, err := NewProcess(mixingProcess("kt"))
		require.NoError(t, err)

		formulas := p.Formulas()
		require.Len(t, formulas, 1)
		assert.Equal(t, "co2", formulas[0].Name)
		assert.Equal(t, "limestone_demand*0.9", expression.Print(formulas[0].Expr))
		assert.Equal(t, []string{"limestone_demand"}, p.MethodArgs())
		assert.Empty(t, p.Dependencies())
	})

	t.Run("undeclared identifier", func(t *testing.T) {
		cfg := mixingProcess("kt")
		cfg.Outputs[0].Operation = "limestone_demand * clay"

		_, err := NewProcess(cfg)
		require.ErrorIs(t, err, expression.ErrUnboundReference)
		assert.Contains(t, err.Error(), "clay")
	})

	t.Run("undeclared input argument", func(t *testing.T) {
		cfg := mixingProcess("kt")
		cfg.Inputs = nil

		_, err := NewProcess(cfg)
		require.ErrorIs(t, err, expression.ErrUnboundReference)
	})

	t.Run("malformed operation", func(t *testing.T) {
		cfg := mixingProcess("kt")
		cfg.Outputs[0].Operation = "(limestone_demand * 0.9"

		_, err := NewProcess(cfg)
		require.ErrorIs(t, err, expression.ErrParse)
	})

	t.Run("duplicate output", func(t *testing.T) {
		cfg := mixingProcess("kt")
		cfg.Outputs = append(cfg.Outputs, cfg.Outputs[0])

		_, err := NewProcess(cfg)
		require.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("constant out of range", func(t *testing.T) {
		cfg := mixingProcess("kt")
		cfg.Constants = []models.Constant{{
			BaseFields: models.BaseFields{Name: "FACTOR"},
			Value:      2,
			Range:      models.Range{0, 1},
		}}

		_, err := NewProcess(cfg)
		require.ErrorIs(t, err, models.ErrRangeViolation)
	})

	t.Run("distinct dependencies", func(t *testing.T) {
		cfg := &models.ProcessConfig{
			Name: "oven", ShortName: "oven", ID: "oven",
			Inputs: []models.Input{
				{BaseFields: models.BaseFields{Name: "a"}, From: "p1"},
				{BaseFields: models.BaseFields{Name: "b"}, From: "p2"},
				{BaseFields: models.BaseFields{Name: "c"}, From: "p1"},
				{BaseFields: models.BaseFields{Name: "d"}},
			},
		}

		p, err := NewProcess(cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2"}, p.Dependencies())
	})
}

func TestProcessFragments(t *testing.T) {
	cfg := &models.ProcessConfig{
		Name:        "Oven",
		ShortName:   "oven",
		ID:          "oven",
		Description: "Clinker oven",
		Constants: []models.Constant{
			{BaseFields: models.BaseFields{Name: "CLINKER_LOSSES", Description: "losses"}, Value: 0},
			{BaseFields: models.BaseFields{Name: "FUEL_HC", Description: "heat capacity"}, Value: 1.035},
		},
		Inputs: []models.Input{
			{BaseFields: models.BaseFields{Name: "raw_mix"}, From: "pre"},
			{BaseFields: models.BaseFields{Name: "fuel_demand"}},
			{BaseFields: models.BaseFields{Name: "water"}, Value: models.Values{3}},
		},
		Outputs: []models.Output{
			{Item: item("heat", "GJ", "FUEL_HC * fuel_demand",
				arg("FUEL_HC", models.ArgConstants), arg("fuel_demand", models.ArgInputs))},
			{Item: item("clinker", "t", "raw_mix * (1 - CLINKER_LOSSES) + heat * water",
				arg("raw_mix", models.ArgInputs), arg("CLINKER_LOSSES", models.ArgConstants),
				arg("heat", models.ArgOutputs), arg("water", models.ArgInputs))},
		},
	}

	p, err := NewProcess(cfg)
	require.NoError(t, err)

	assert.Equal(t,
		"# Oven's constants\nCLINKER_LOSSES = 0.0  # losses\nFUEL_HC = 1.035  # heat capacity",
		p.ConstantsFragment())

	assert.Equal(t,
		"self.__heat = FUEL_HC*fuel_demand\n        self.__clinker = raw_mix*(1 - CLINKER_LOSSES) + self.__heat*water",
		p.OperationsFragment())

	assert.Equal(t, "self.__oven(self.__fuel_demand, self.__raw_mix, self.__water)", p.CallFragment())

	assert.Equal(t, []string{"self.__water = 3.0"}, p.StandaloneInputs(nil))
	assert.Empty(t, p.StandaloneInputs(map[string]struct{}{"water": {}}))

	templates, err := rendering.DefaultTemplates()
	require.NoError(t, err)

	method, err := p.MethodFragment(templates.ProcessMethod)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(method, "    def __oven(self, fuel_demand, raw_mix, water) -> None:\n"))
	assert.Contains(t, method, `"""Clinker oven"""`)
	assert.Contains(t, method, "        self.__clinker = ")

	getters, err := p.GettersFragment(templates.Getter)
	require.NoError(t, err)
	assert.Contains(t, getters, "def get_heat(self) -> float:")
	assert.Contains(t, getters, "def get_clinker(self) -> float:")
}

func TestNewMeta(t *testing.T) {
	cfg := cementMeta()
	cfg.Demands = append(cfg.Demands,
		models.Demand{
			Item: item("energy_pre", "MWh", "total_production * 2", arg("total_production", models.ArgOutcome)),
			Used: "mixing",
			Meta: "energy",
		},
		models.Demand{
			Item: item("energy_oven", "MWh", "total_production * 3", arg("total_production", models.ArgOutcome)),
			Used: "oven",
			Meta: "energy",
		},
	)
	cfg.Meta = []models.MetaDemand{{Item: item("energy", "MWh", "energy_pre + energy_oven",
		arg("energy_pre", models.ArgDemands), arg("energy_oven", models.ArgDemands))}}
	cfg.Outputs = []models.Output{{Item: item("co2_total", "kt", "co2 * CO2_SHARE",
		arg("co2", models.ArgOutputs), arg("CO2_SHARE", models.ArgConstants))}}
	cfg.Constants = []models.Constant{{BaseFields: models.BaseFields{Name: "CO2_SHARE", Description: "share"}, Value: 1}}

	meta, err := NewMeta(cfg)
	require.NoError(t, err)

	names := make([]string, 0)
	for _, f := range meta.Formulas() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"limestone_demand", "energy", "co2_total"}, names)
	assert.Len(t, meta.Demands(), 3)

	assert.Equal(t, []string{
		"self.__limestone_demand = self.__total_production*1.035",
		"self.__energy_pre = self.__total_production*2",
	}, meta.PreFragment("mixing"))
	assert.Equal(t, []string{"self.__energy_oven = self.__total_production*3"}, meta.PreFragment("oven"))
	assert.Empty(t, meta.PreFragment("milling"))

	assert.Equal(t, []string{
		"self.__energy = self.__energy_pre + self.__energy_oven",
		"self.__co2_total = CO2_SHARE*self.__co2",
	}, meta.PostFragment())

	assert.Equal(t, []UnitEntry{
		{Name: "total_production", Units: "kt"},
		{Name: "limestone_demand", Units: "kt"},
		{Name: "energy", Units: "MWh"},
		{Name: "co2_total", Units: "kt"},
	}, meta.Units())

	items := meta.GetterItems()
	require.Len(t, items, 4)
	assert.Equal(t, "total_production", items[0].Name)

	assert.Equal(t, map[string]struct{}{"limestone_demand": {}, "energy_pre": {}}, meta.DemandsFor("mixing"))
}

func TestNewMetaErrors(t *testing.T) {
	t.Run("missing outcome", func(t *testing.T) {
		cfg := cementMeta()
		cfg.Outcome = models.Outcome{}

		_, err := NewMeta(cfg)
		require.ErrorIs(t, err, models.ErrMissingOutcome)
	})

	t.Run("duplicate demand", func(t *testing.T) {
		cfg := cementMeta()
		cfg.Demands = append(cfg.Demands, cfg.Demands[0])

		_, err := NewMeta(cfg)
		require.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("undeclared identifier in demand", func(t *testing.T) {
		cfg := cementMeta()
		cfg.Demands[0].Operation = "total_production * LIMESTONE_SHARE"

		_, err := NewMeta(cfg)
		require.ErrorIs(t, err, expression.ErrUnboundReference)
	})
}

func TestAddProcess(t *testing.T) {
	ind := New()
	p := chainProcess(t, "p1", "", "", "a")

	require.NoError(t, ind.AddProcess("p1", p))
	require.ErrorIs(t, ind.AddProcess("p1", p), ErrDuplicateProcess)

	assert.Equal(t, []string{"p1"}, ind.ProcessIDs())
	assert.Empty(t, ind.Dependencies("p1"))

	got, ok := ind.Process("p1")
	require.True(t, ok)
	assert.Same(t, p, got)
}

func TestCheckTypes(t *testing.T) {
	t.Run("consistent units", func(t *testing.T) {
		require.NoError(t, cement(t).CheckTypes())
	})

	t.Run("meta not set", func(t *testing.T) {
		require.ErrorIs(t, New().CheckTypes(), ErrMetaNotSet)
	})

	t.Run("demand unit mismatch", func(t *testing.T) {
		meta, err := NewMeta(cementMeta())
		require.NoError(t, err)
		mixing, err := NewProcess(mixingProcess("t"))
		require.NoError(t, err)

		ind := New()
		ind.SetMeta(meta)
		require.NoError(t, ind.AddProcess("mixing", mixing))

		err = ind.CheckTypes()
		require.ErrorIs(t, err, ErrUnitMismatch)
		assert.Contains(t, err.Error(), "(kt)")
		assert.Contains(t, err.Error(), "(t)")
		assert.Contains(t, err.Error(), "limestone_demand")
	})

	t.Run("demand used by unknown process", func(t *testing.T) {
		meta, err := NewMeta(cementMeta())
		require.NoError(t, err)

		ind := New()
		ind.SetMeta(meta)

		err = ind.CheckTypes()
		require.ErrorIs(t, err, ErrUnitMismatch)
		require.ErrorIs(t, err, ErrUnknownProcess)
	})

	t.Run("demand missing from process inputs", func(t *testing.T) {
		meta, err := NewMeta(cementMeta())
		require.NoError(t, err)

		ind := New()
		ind.SetMeta(meta)
		require.NoError(t, ind.AddProcess("mixing", chainProcess(t, "mixing", "", "", "co2")))

		err = ind.CheckTypes()
		require.ErrorIs(t, err, ErrUnitMismatch)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("input from missing output", func(t *testing.T) {
		ind := cement(t)
		require.NoError(t, ind.AddProcess("p1", chainProcess(t, "p1", "", "", "a")))
		require.NoError(t, ind.AddProcess("p2", chainProcess(t, "p2", "x", "p1", "b")))

		err := ind.CheckTypes()
		require.ErrorIs(t, err, ErrUnitMismatch)
		assert.Contains(t, err.Error(), "'x' does not exist in 'p1'")
	})

	t.Run("input from unknown process", func(t *testing.T) {
		ind := cement(t)
		require.NoError(t, ind.AddProcess("p2", chainProcess(t, "p2", "a", "p1", "b")))

		err := ind.CheckTypes()
		require.ErrorIs(t, err, ErrUnknownProcess)
	})

	t.Run("units across processes", func(t *testing.T) {
		build := func(t *testing.T, inputUnits string) *Industry {
			t.Helper()

			a, err := NewProcess(&models.ProcessConfig{
				Name: "A", ShortName: "a", ID: "a",
				Outputs: []models.Output{{Item: item("o", "kt", "1")}},
			})
			require.NoError(t, err)

			b, err := NewProcess(&models.ProcessConfig{
				Name: "B", ShortName: "b", ID: "b",
				Inputs: []models.Input{
					{BaseFields: models.BaseFields{Name: "o", Units: inputUnits}, From: "a"},
				},
				Outputs: []models.Output{{Item: item("p", "kt", "o * 2", arg("o", models.ArgInputs))}},
			})
			require.NoError(t, err)

			ind := cement(t)
			require.NoError(t, ind.AddProcess("a", a))
			require.NoError(t, ind.AddProcess("b", b))
			return ind
		}

		require.NoError(t, build(t, "kt").CheckTypes())

		err := build(t, "t").CheckTypes()
		require.ErrorIs(t, err, ErrUnitMismatch)
		for _, want := range []string{"'A'", "'B'", "(kt)", "(t)"} {
			assert.Contains(t, err.Error(), want)
		}
	})

	t.Run("missing output names both processes", func(t *testing.T) {
		ind := cement(t)
		require.NoError(t, ind.AddProcess("p1", chainProcess(t, "p1", "", "", "a")))
		require.NoError(t, ind.AddProcess("p2", chainProcess(t, "p2", "x", "p1", "b")))

		err := ind.CheckTypes()
		require.ErrorIs(t, err, ErrUnitMismatch)
		assert.Contains(t, err.Error(), "'x' does not exist in 'p1' required by 'p2'")
	})

	t.Run("input without source, demand or value", func(t *testing.T) {
		cfg := mixingProcess("kt")
		cfg.Inputs = append(cfg.Inputs, models.Input{BaseFields: models.BaseFields{Name: "water", Units: "kt"}})
		cfg.Outputs[0].Item = item("co2", "kt", "limestone_demand * 0.9 + water",
			arg("limestone_demand", models.ArgInputs), arg("water", models.ArgInputs))

		mixing, err := NewProcess(cfg)
		require.NoError(t, err)
		meta, err := NewMeta(cementMeta())
		require.NoError(t, err)

		ind := New()
		ind.SetMeta(meta)
		require.NoError(t, ind.AddProcess("mixing", mixing))

		err = ind.CheckTypes()
		require.ErrorIs(t, err, expression.ErrUnboundReference)
		assert.Contains(t, err.Error(), "'water' of 'Mixing'")

		cfg.Inputs[1].Value = models.Values{3}
		mixing, err = NewProcess(cfg)
		require.NoError(t, err)
		meta, err = NewMeta(cementMeta())
		require.NoError(t, err)

		ind = New()
		ind.SetMeta(meta)
		require.NoError(t, ind.AddProcess("mixing", mixing))
		require.NoError(t, ind.CheckTypes())
	})
}

func TestExecutionQueue(t *testing.T) {
	t.Run("chain in arbitrary insertion order", func(t *testing.T) {
		ind := New()
		require.NoError(t, ind.AddProcess("p3", chainProcess(t, "p3", "b", "p2", "c")))
		require.NoError(t, ind.AddProcess("p1", chainProcess(t, "p1", "", "", "a")))
		require.NoError(t, ind.AddProcess("p2", chainProcess(t, "p2", "a", "p1", "b")))

		queue, err := ind.ExecutionQueue()
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2", "p3"}, queue)

		levels, err := ind.Levels()
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"p1": 0, "p2": 1, "p3": 2}, levels)
	})

	t.Run("independent processes keep insertion order", func(t *testing.T) {
		ind := New()
		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, ind.AddProcess(id, chainProcess(t, id, "", "", id+"_out")))
		}

		for n := 0; n < 5; n++ {
			queue, err := ind.ExecutionQueue()
			require.NoError(t, err)
			assert.Equal(t, []string{"c", "a", "b"}, queue)
		}
	})

	t.Run("diamond", func(t *testing.T) {
		ind := New()
		top := chainProcess(t, "top", "", "", "a")

		left := chainProcess(t, "left", "a", "top", "l")
		right := chainProcess(t, "right", "a", "top", "r")

		joinCfg := &models.ProcessConfig{
			Name: "join", ShortName: "join", ID: "join",
			Inputs: []models.Input{
				{BaseFields: models.BaseFields{Name: "r", Units: "t"}, From: "right"},
				{BaseFields: models.BaseFields{Name: "l", Units: "t"}, From: "left"},
			},
			Outputs: []models.Output{{Item: item("j", "t", "l + r",
				arg("l", models.ArgInputs), arg("r", models.ArgInputs))}},
		}
		join, err := NewProcess(joinCfg)
		require.NoError(t, err)

		require.NoError(t, ind.AddProcess("join", join))
		require.NoError(t, ind.AddProcess("right", right))
		require.NoError(t, ind.AddProcess("left", left))
		require.NoError(t, ind.AddProcess("top", top))

		queue, err := ind.ExecutionQueue()
		require.NoError(t, err)
		assert.Equal(t, []string{"top", "right", "left", "join"}, queue)

		dependents, err := ind.Dependents("top")
		require.NoError(t, err)
		assert.Equal(t, []string{"right", "left"}, dependents)

		dot, err := ind.DOT()
		require.NoError(t, err)
		assert.Equal(t, `digraph industry {
  rankdir=LR;
  "top" [label="top", shape=box];
  "right" [label="right"];
  "left" [label="left"];
  "join" [label="join"];
  "top" -> "right";
  "top" -> "left";
  "right" -> "join";
  "left" -> "join";
}`, dot)
	})

	t.Run("cycle", func(t *testing.T) {
		ind := New()
		require.NoError(t, ind.AddProcess("p1", chainProcess(t, "p1", "b", "p2", "a")))
		require.NoError(t, ind.AddProcess("p2", chainProcess(t, "p2", "a", "p1", "b")))

		_, err := ind.ExecutionQueue()
		require.ErrorIs(t, err, ErrCyclicDependency)
	})

	t.Run("self reference", func(t *testing.T) {
		ind := New()
		require.NoError(t, ind.AddProcess("p1", chainProcess(t, "p1", "a", "p1", "b")))

		_, err := ind.ExecutionQueue()
		require.ErrorIs(t, err, ErrCyclicDependency)
	})

	t.Run("unknown dependency", func(t *testing.T) {
		ind := New()
		require.NoError(t, ind.AddProcess("p2", chainProcess(t, "p2", "a", "p1", "b")))

		_, err := ind.ExecutionQueue()
		require.ErrorIs(t, err, ErrUnknownProcess)
	})

	t.Run("empty industry", func(t *testing.T) {
		queue, err := New().ExecutionQueue()
		require.NoError(t, err)
		assert.Empty(t, queue)
	})
}

func TestScript(t *testing.T) {
	templates, err := rendering.DefaultTemplates()
	require.NoError(t, err)

	t.Run("cement", func(t *testing.T) {
		script, err := cement(t).Script(templates)
		require.NoError(t, err)

		for _, want := range []string{
			`NAME = "Cement industry"`,
			"class cement:",
			"    def __init__(self, total_production):",
			"        self.__validate_total_production(total_production)",
			"        self.__total_production = total_production\n" +
				"        self.__limestone_demand = self.__total_production*1.035\n" +
				"        self.__mixing(self.__limestone_demand)\n",
			"if total_production < 5 or total_production > 1000:",
			"    def __mixing(self, limestone_demand) -> None:",
			"        self.__co2 = limestone_demand*0.9",
			"def get_total_production(self) -> float:",
			"def get_limestone_demand(self) -> float:",
			"def get_co2(self) -> float:",
			"UNITS = {\n    \"total_production\": \"kt\",\n    \"limestone_demand\": \"kt\",\n    \"co2\": \"kt\"\n}",
			`lines = ["cement industry"]`,
		} {
			assert.Contains(t, script, want)
		}
		assert.NotContains(t, script, "${")
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := cement(t).Script(templates)
		require.NoError(t, err)
		second, err := cement(t).Script(templates)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("outcome range overrides unit bounds", func(t *testing.T) {
		cfg := cementMeta()
		cfg.Outcome.Range = models.Range{10, 500}
		meta, err := NewMeta(cfg)
		require.NoError(t, err)
		mixing, err := NewProcess(mixingProcess("kt"))
		require.NoError(t, err)

		ind := New(WithUnitBounds(1, 2))
		ind.SetMeta(meta)
		require.NoError(t, ind.AddProcess("mixing", mixing))

		script, err := ind.Script(templates)
		require.NoError(t, err)
		assert.Contains(t, script, "between 10 and 500")
	})

	t.Run("configured unit bounds", func(t *testing.T) {
		meta, err := NewMeta(cementMeta())
		require.NoError(t, err)

		ind := New(WithUnitBounds(1, 2.5))
		ind.SetMeta(meta)

		script, err := ind.Script(templates)
		require.NoError(t, err)
		assert.Contains(t, script, "between 1 and 2.5")
	})

	t.Run("meta not set", func(t *testing.T) {
		_, err := New().Script(templates)
		require.ErrorIs(t, err, ErrMetaNotSet)
	})

	t.Run("template missing placeholder value", func(t *testing.T) {
		broken, err := rendering.NewTemplateEngine().Parse("getter", "def get_${name}(): ${unknown}")
		require.NoError(t, err)

		custom := *templates
		custom.Getter = broken

		_, err = cement(t).Script(&custom)
		require.ErrorIs(t, err, rendering.ErrTemplate)
	})
}

func TestEvaluate(t *testing.T) {
	ind := cement(t)

	values, err := ind.Evaluate(100)
	require.NoError(t, err)
	assert.InDelta(t, 100, values["total_production"], 1e-9)
	assert.InDelta(t, 103.5, values["limestone_demand"], 1e-9)
	assert.InDelta(t, 93.15, values["co2"], 1e-9)

	_, err = ind.Evaluate(4)
	require.ErrorIs(t, err, ErrOutcomeOutOfRange)

	_, err = ind.Evaluate(1001)
	require.ErrorIs(t, err, ErrOutcomeOutOfRange)

	_, err = New().Evaluate(100)
	require.ErrorIs(t, err, ErrMetaNotSet)
}

func TestVerify(t *testing.T) {
	t.Run("golden values match", func(t *testing.T) {
		require.NoError(t, cement(t).Verify())
	})

	t.Run("golden value mismatch", func(t *testing.T) {
		meta, err := NewMeta(cementMeta())
		require.NoError(t, err)

		cfg := mixingProcess("kt")
		cfg.Outputs[0].Tests = []float64{90}
		mixing, err := NewProcess(cfg)
		require.NoError(t, err)

		ind := New()
		ind.SetMeta(meta)
		require.NoError(t, ind.AddProcess("mixing", mixing))

		err = ind.Verify()
		require.ErrorIs(t, err, ErrGoldenMismatch)
		assert.Contains(t, err.Error(), "'co2' in 'Mixing'")
	})
}
