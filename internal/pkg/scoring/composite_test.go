package scoring

import (
	"math"
	"testing"
)

var testWeights = Weights{
	Engagement:  0.35,
	Freshness:   0.30,
	Reliability: 0.20,
	Quality:     0.15,
}

func TestCompositeWeightedSum(t *testing.T) {
	got := Composite(100, 100, 100, 100, 0, testWeights)
	if math.Abs(got-100) > 0.0001 {
		t.Fatalf("all max sub-scores should compose to 100, got %v", got)
	}

	got = Composite(80, 60, 40, 20, 0, testWeights)
	want := 0.35*80 + 0.30*60 + 0.20*40 + 0.15*20
	if math.Abs(got-want) > 0.0001 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCompositePenaltySubtracts(t *testing.T) {
	base := Composite(80, 60, 40, 20, 0, testWeights)
	penalized := Composite(80, 60, 40, 20, 10, testWeights)
	if math.Abs(base-penalized-10) > 0.0001 {
		t.Fatalf("penalty should subtract linearly: base=%v penalized=%v", base, penalized)
	}
}

func TestCompositeClampsInputsAndResult(t *testing.T) {
	// 越界输入先收敛再合成
	got := Composite(500, -50, 100, 100, 0, testWeights)
	want := 0.35*100 + 0.30*0 + 0.20*100 + 0.15*100
	if math.Abs(got-want) > 0.0001 {
		t.Fatalf("out-of-range inputs must clamp first: want %v, got %v", want, got)
	}

	// 大惩罚不会把结果打到负数
	if got := Composite(10, 10, 10, 10, 100, testWeights); got != 0 {
		t.Fatalf("result must clamp to [0,100], got %v", got)
	}
}

func TestBoostBonusDiminishing(t *testing.T) {
	unit := 2.0
	if got := BoostBonus(0, unit); got != 0 {
		t.Fatalf("zero boosts should give 0, got %v", got)
	}
	if got := BoostBonus(1, unit); math.Abs(got-2) > 0.0001 {
		t.Fatalf("one boost should give one unit, got %v", got)
	}
	if got := BoostBonus(4, unit); math.Abs(got-4) > 0.0001 {
		t.Fatalf("four boosts should give sqrt(4)*unit, got %v", got)
	}

	// 边际收益必须递减
	d1 := BoostBonus(2, unit) - BoostBonus(1, unit)
	d2 := BoostBonus(101, unit) - BoostBonus(100, unit)
	if d2 >= d1 {
		t.Fatalf("marginal bonus must shrink: d1=%v d2=%v", d1, d2)
	}
}

func TestBoostBonusNegativeCount(t *testing.T) {
	if got := BoostBonus(-3, 2.0); got != 0 {
		t.Fatalf("negative count should give 0, got %v", got)
	}
}

func TestPreferenceBonusEmptyPrefs(t *testing.T) {
	// 空偏好恒为 0: 个性化流对无偏好用户退化为社区口径
	if got := PreferenceBonus("soccer", "spread", nil, nil, 3); got != 0 {
		t.Fatalf("empty preferences must give 0, got %v", got)
	}
	if got := PreferenceBonus("soccer", "spread", []string{}, []string{}, 3); got != 0 {
		t.Fatalf("empty slices must give 0, got %v", got)
	}
}

func TestPreferenceBonusHits(t *testing.T) {
	sports := []string{"soccer", "tennis"}
	bets := []string{"spread", "moneyline"}

	if got := PreferenceBonus("soccer", "spread", sports, bets, 3); got != 6 {
		t.Fatalf("double match should give two units, got %v", got)
	}
	if got := PreferenceBonus("soccer", "totals", sports, bets, 3); got != 3 {
		t.Fatalf("single match should give one unit, got %v", got)
	}
	if got := PreferenceBonus("golf", "totals", sports, bets, 3); got != 0 {
		t.Fatalf("no match should give 0, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 100); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := Clamp(101, 0, 100); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	if got := Clamp(42, 0, 100); got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}
}
