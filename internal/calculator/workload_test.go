package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"ThrowSentinel/internal/model"
)

// aprilSnapshots is a month of real snapshot data including the vendor's own
// precomputed acute/chronic/ratio figures, used to verify that the local
// computation reproduces them.
func aprilSnapshots() []model.DailySnapshot {
	return []model.DailySnapshot{
		{Date: "2022-04-01", AcuteWorkload: 9769.022346690714, ChronicWorkload: 10026.405936064493, NormAcuteWorkload: 13.58291028054794, NormChronicWorkload: 13.94077804643894, WorkloadRatio: 0.9743294266145774, DailyWorkload: 5688.352069854736, NormDailyWorkload: 7.9090772196650505},
		{Date: "2022-04-02", AcuteWorkload: 10325.500974344754, ChronicWorkload: 10177.924288214426, NormAcuteWorkload: 14.35664167394861, NormChronicWorkload: 14.15145011883994, WorkloadRatio: 1.014499684017223, DailyWorkload: 12706.15563583374, NormDailyWorkload: 17.66662183776498},
		{Date: "2022-04-03", AcuteWorkload: 7979.457436662022, ChronicWorkload: 9595.381489363837, NormAcuteWorkload: 11.094687943502024, NormChronicWorkload: 13.341478937430239, WorkloadRatio: 0.8315935583704501, DailyWorkload: 0, NormDailyWorkload: 0},
		{Date: "2022-04-04", AcuteWorkload: 9236.96285098243, ChronicWorkload: 9860.420623440632, NormAcuteWorkload: 12.843131402207334, NormChronicWorkload: 13.709991020957075, WorkloadRatio: 0.9367716858877106, DailyWorkload: 15147.249799728394, NormDailyWorkload: 21.060715950094163},
		{Date: "2022-04-05", AcuteWorkload: 9730.614461372823, ChronicWorkload: 9994.793104155708, NormAcuteWorkload: 13.529507714577234, NormChronicWorkload: 13.896823365582208, WorkloadRatio: 0.9735683730488586, DailyWorkload: 11512.759433746338, NormDailyWorkload: 16.007325431331992},
		{Date: "2022-04-06", AcuteWorkload: 8931.51797996112, ChronicWorkload: 9583.81069941426, NormAcuteWorkload: 12.418438927208397, NormChronicWorkload: 13.325390838111538, WorkloadRatio: 0.9319380630615954, DailyWorkload: 5912.964567422867, NormDailyWorkload: 8.221378200221807},
		{Date: "2022-04-07", AcuteWorkload: 8749.548213927625, ChronicWorkload: 9563.768104249153, NormAcuteWorkload: 12.165427016897581, NormChronicWorkload: 13.297523487392537, WorkloadRatio: 0.9148641119853405, DailyWorkload: 5039.746336936951, NormDailyWorkload: 7.0072567539755255},
		{Date: "2022-04-08", AcuteWorkload: 7331.461109998418, ChronicWorkload: 9428.308313331167, NormAcuteWorkload: 10.193709764229256, NormChronicWorkload: 13.109179339804003, WorkloadRatio: 0.7776009084929998, DailyWorkload: 7164.87233543396, NormDailyWorkload: 9.96202889084816},
		{Date: "2022-04-09", AcuteWorkload: 9852.207222752675, ChronicWorkload: 9917.245579437607, NormAcuteWorkload: 13.698571056841576, NormChronicWorkload: 13.789000798149823, WorkloadRatio: 0.9934418930978393, DailyWorkload: 21837.042689085007, NormDailyWorkload: 30.362195095978677},
		{Date: "2022-04-10", AcuteWorkload: 9210.672000597384, ChronicWorkload: 9976.051151049427, NormAcuteWorkload: 12.80657643802503, NormChronicWorkload: 13.87076443578448, WorkloadRatio: 0.9232783454231256, DailyWorkload: 3197.7362327575684, NormDailyWorkload: 4.446128189563751},
		{Date: "2022-04-11", AcuteWorkload: 7640.654314958832, ChronicWorkload: 9264.735211210285, NormAcuteWorkload: 10.623613946376517, NormChronicWorkload: 12.881746267018427, WorkloadRatio: 0.8247029343821589, DailyWorkload: 0, NormDailyWorkload: 0},
		{Date: "2022-04-12", AcuteWorkload: 10013.581635744167, ChronicWorkload: 9721.747565212716, NormAcuteWorkload: 13.92294705839531, NormChronicWorkload: 13.517179126235897, WorkloadRatio: 1.03001868425135, DailyWorkload: 20455.685294628143, NormDailyWorkload: 28.44155780505389},
		{Date: "2022-04-13", AcuteWorkload: 9107.730440447824, ChronicWorkload: 9726.029379553673, NormAcuteWorkload: 12.663445843577698, NormChronicWorkload: 13.523132587899426, WorkloadRatio: 0.9364284318937329, DailyWorkload: 6218.792235374451, NormDailyWorkload: 8.646600391715765},
		{Date: "2022-04-14", AcuteWorkload: 8380.726858319593, ChronicWorkload: 9038.373215736996, NormAcuteWorkload: 11.652615478036582, NormChronicWorkload: 12.567011120928703, WorkloadRatio: 0.9272384153962182, DailyWorkload: 5194.520327806473, NormDailyWorkload: 7.2224541627801955},
		{Date: "2022-04-15", AcuteWorkload: 8534.72552121745, ChronicWorkload: 9141.692885092649, NormAcuteWorkload: 11.866736190143921, NormChronicWorkload: 12.710667440800783, WorkloadRatio: 0.9336044897258603, DailyWorkload: 8237.077334880829, NormDailyWorkload: 11.452821342973039},
		{Date: "2022-04-16", AcuteWorkload: 8420.235936158075, ChronicWorkload: 9035.608050274644, NormAcuteWorkload: 11.707549149032745, NormChronicWorkload: 12.563166417430944, WorkloadRatio: 0.931894775570985, DailyWorkload: 6092.569334983826, NormDailyWorkload: 8.471100229769945},
		{Date: "2022-04-17", AcuteWorkload: 10005.906194969622, ChronicWorkload: 9712.225984205748, NormAcuteWorkload: 13.91227507713614, NormChronicWorkload: 13.503940259954623, WorkloadRatio: 1.0302381978386277, DailyWorkload: 18945.406072616577, NormDailyWorkload: 26.341667590662837},
		{Date: "2022-04-18", AcuteWorkload: 7979.524477446772, ChronicWorkload: 9439.300918875415, NormAcuteWorkload: 11.094781157431942, NormChronicWorkload: 13.124463527879135, WorkloadRatio: 0.8453512125554147, DailyWorkload: 1672.3294219970703, NormDailyWorkload: 2.3252046294510365},
		{Date: "2022-04-19", AcuteWorkload: 8196.435556636983, ChronicWorkload: 9057.335335852069, NormAcuteWorkload: 11.396375689918147, NormChronicWorkload: 12.593376172323968, WorkloadRatio: 0.9049499938676947, DailyWorkload: 7078.349512696266, NormDailyWorkload: 9.841727681923658},
		{Date: "2022-04-20", AcuteWorkload: 10737.936006029575, ChronicWorkload: 9593.310916492095, NormAcuteWorkload: 14.930093943082541, NormChronicWorkload: 13.338599999851011, WorkloadRatio: 1.119314916351739, DailyWorkload: 21858.257093429565, NormDailyWorkload: 30.391691781580448},
		{Date: "2022-04-21", AcuteWorkload: 9445.811285348613, ChronicWorkload: 9551.839701947065, NormAcuteWorkload: 13.133515582482007, NormChronicWorkload: 13.280938161603572, WorkloadRatio: 0.988899686352898, DailyWorkload: 6413.146989166737, NormDailyWorkload: 8.91683100303635},
		{Date: "2022-04-22", AcuteWorkload: 9390.19576466845, ChronicWorkload: 9015.862651601365, NormAcuteWorkload: 13.05618741178123, NormChronicWorkload: 12.535712290588492, WorkloadRatio: 1.0415193894952024, DailyWorkload: 7318.835624694824, NormDailyWorkload: 10.176099322736263},
		{Date: "2022-04-23", AcuteWorkload: 9298.124327892334, ChronicWorkload: 9087.903492801617, NormAcuteWorkload: 12.928170705426293, NormChronicWorkload: 12.635878330528987, WorkloadRatio: 1.0231319396445209, DailyWorkload: 6637.472747802734, NormDailyWorkload: 9.228733327239752},
		{Date: "2022-04-24", AcuteWorkload: 9217.966913020973, ChronicWorkload: 9140.369929652124, NormAcuteWorkload: 12.816719330265176, NormChronicWorkload: 12.708827995212873, WorkloadRatio: 1.0084894795250154, DailyWorkload: 8265.969958603382, NormDailyWorkload: 11.49299363931641},
		{Date: "2022-04-25", AcuteWorkload: 9290.994089943375, ChronicWorkload: 8965.300804817922, NormAcuteWorkload: 12.918256777614216, NormChronicWorkload: 12.465410779945417, WorkloadRatio: 1.0363282049555356, DailyWorkload: 8297.137899398804, NormDailyWorkload: 11.536329507827759},
		{Date: "2022-04-26", AcuteWorkload: 9900.406866261912, ChronicWorkload: 9499.103695570375, NormAcuteWorkload: 13.76558814515463, NormChronicWorkload: 13.207613685750403, WorkloadRatio: 1.042246424878873, DailyWorkload: 18317.032143354416, NormDailyWorkload: 25.467977260239422},
		{Date: "2022-04-27", AcuteWorkload: 9898.263251602619, ChronicWorkload: 8797.390969861308, NormAcuteWorkload: 13.762607649813344, NormChronicWorkload: 12.231947886474822, WorkloadRatio: 1.1251362233999551, DailyWorkload: 5742.540998458862, NormDailyWorkload: 7.984421189874411},
		{Date: "2022-04-28", AcuteWorkload: 9572.86638794277, ChronicWorkload: 8974.611133160417, NormAcuteWorkload: 13.310173798419742, NormChronicWorkload: 12.478355919189712, WorkloadRatio: 1.0666608553736496, DailyWorkload: 6338.489402413368, NormDailyWorkload: 8.813027301686816},
		{Date: "2022-04-29", AcuteWorkload: 8028.766383598599, ChronicWorkload: 8948.752562972028, NormAcuteWorkload: 11.163247414296427, NormChronicWorkload: 12.442402000119078, WorkloadRatio: 0.8971939191636463, DailyWorkload: 4964.308172225952, NormDailyWorkload: 6.902367485687137},
		{Date: "2022-04-30", AcuteWorkload: 10074.395739401238, ChronicWorkload: 9259.825028807387, NormAcuteWorkload: 14.007503371652772, NormChronicWorkload: 12.874919118438683, WorkloadRatio: 1.0879682616096649, DailyWorkload: 21416.232349395752, NormDailyWorkload: 29.77710115071386},
	}
}

// shortHistory is three consecutive days of throwing, short enough to
// exercise the dynamic divisors.
func shortHistory() []model.DailySnapshot {
	return []model.DailySnapshot{
		{Date: "2022-06-01", DailyWorkload: 18113.604788780212, NormDailyWorkload: 25.18513187021017},
		{Date: "2022-06-02", DailyWorkload: 7348.9012451171875, NormDailyWorkload: 10.217902589589357},
		{Date: "2022-06-03", DailyWorkload: 12723.611276626587, NormDailyWorkload: 17.690892127342522},
	}
}

func approx(t *testing.T, name string, got, want, relTol float64) {
	t.Helper()
	if want == 0 {
		if got != 0 {
			t.Errorf("%s: got %v, want 0", name, got)
		}
		return
	}
	if math.Abs(got-want)/math.Abs(want) > relTol {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}

func TestCalculateAcuteWorkload_MatchesVendorValues(t *testing.T) {
	snapshots := aprilSnapshots()
	last := snapshots[len(snapshots)-1]
	prev := snapshots[len(snapshots)-2]

	got, err := CalculateAcuteWorkload(snapshots, "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "norm acute (default end)", got, last.NormAcuteWorkload, 1e-9)

	got, err = CalculateAcuteWorkload(snapshots, "2022-04-29", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "norm acute (2022-04-29)", got, prev.NormAcuteWorkload, 1e-9)

	// The vendor applies per-day scalers before storing the raw figure, so
	// the raw comparison is looser than the normalized one.
	got, err = CalculateAcuteWorkload(snapshots, "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "raw acute (default end)", got, last.AcuteWorkload, 1e-4)
}

func TestCalculateChronicWorkload_MatchesVendorValues(t *testing.T) {
	snapshots := aprilSnapshots()
	last := snapshots[len(snapshots)-1]
	prev := snapshots[len(snapshots)-2]

	got, err := CalculateChronicWorkload(snapshots, "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "norm chronic (default end)", got, last.NormChronicWorkload, 1e-9)

	got, err = CalculateChronicWorkload(snapshots, "2022-04-29", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "norm chronic (2022-04-29)", got, prev.NormChronicWorkload, 1e-9)

	got, err = CalculateChronicWorkload(snapshots, "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "raw chronic (default end)", got, last.ChronicWorkload, 1e-4)
}

func TestCalculateACR_MatchesVendorValues(t *testing.T) {
	snapshots := aprilSnapshots()
	last := snapshots[len(snapshots)-1]
	prev := snapshots[len(snapshots)-2]

	got, err := CalculateACR(snapshots, "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "norm ACR (default end)", got, last.WorkloadRatio, 1e-9)

	got, err = CalculateACR(snapshots, "2022-04-29", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "norm ACR (2022-04-29)", got, prev.WorkloadRatio, 1e-9)
}

func TestShortHistory_DivisorAdjustment(t *testing.T) {
	snapshots := shortHistory()

	// Three days of data: span 2, acute divisor 5, chronic divisor 7.
	acute, err := CalculateAcuteWorkload(snapshots, "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "short-history acute", acute, 12.895598417706788, 1e-9)

	chronic, err := CalculateChronicWorkload(snapshots, "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "short-history chronic", chronic, 7.584846655306007, 1e-9)

	acr, err := CalculateACR(snapshots, "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approx(t, "short-history ACR", acr, 1.7001791867058544, 1e-9)
}

func TestWorkload_EndDateFarPastData(t *testing.T) {
	// A reference date a year after all data is not an error: every window
	// term is zero, and ACR short-circuits on the zero chronic workload.
	snapshots := aprilSnapshots()

	acute, err := CalculateAcuteWorkload(snapshots, "2023-04-30", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acute != 0.0 {
		t.Errorf("acute: got %v, want 0.0", acute)
	}

	chronic, err := CalculateChronicWorkload(snapshots, "2023-04-30", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chronic != 0.0 {
		t.Errorf("chronic: got %v, want 0.0", chronic)
	}

	acr, err := CalculateACR(snapshots, "2023-04-30", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acr != 0.0 {
		t.Errorf("ACR: got %v, want 0.0", acr)
	}
}

func TestWorkload_EndDateBeforeAllData(t *testing.T) {
	snapshots := aprilSnapshots()

	if _, err := CalculateAcuteWorkload(snapshots, "2021-04-01", true); err == nil {
		t.Error("acute: expected range error for end date before all data")
	}
	if _, err := CalculateChronicWorkload(snapshots, "2021-04-01", true); err == nil {
		t.Error("chronic: expected range error for end date before all data")
	}
	if _, err := CalculateACR(snapshots, "2021-04-01", true); err == nil {
		t.Error("ACR: expected range error for end date before all data")
	}
}

func TestWorkload_EmptySnapshots(t *testing.T) {
	if _, err := CalculateAcuteWorkload(nil, "", true); !errors.Is(err, ErrNoSnapshots) {
		t.Errorf("acute: got %v, want ErrNoSnapshots", err)
	}
	if _, err := CalculateChronicWorkload(nil, "", true); !errors.Is(err, ErrNoSnapshots) {
		t.Errorf("chronic: got %v, want ErrNoSnapshots", err)
	}
	if _, err := CalculateACR(nil, "", true); !errors.Is(err, ErrNoSnapshots) {
		t.Errorf("ACR: got %v, want ErrNoSnapshots", err)
	}
}

func TestWorkload_InvalidDates(t *testing.T) {
	bad := []model.DailySnapshot{{Date: "junk", DailyWorkload: 1, NormDailyWorkload: 1}}
	if _, err := CalculateAcuteWorkload(bad, "", true); err == nil {
		t.Error("expected parse error for invalid snapshot date")
	}
	if _, err := CalculateAcuteWorkload(shortHistory(), "junk", true); err == nil {
		t.Error("expected parse error for invalid end date")
	}
}

func TestWorkloadsByDate(t *testing.T) {
	snapshots := shortHistory()

	norm, err := WorkloadsByDate(snapshots, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := WorkloadsByDate(snapshots, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(norm) != len(snapshots) || len(raw) != len(snapshots) {
		t.Fatalf("expected %d entries, got %d norm / %d raw", len(snapshots), len(norm), len(raw))
	}

	for _, snap := range snapshots {
		day, err := time.Parse(dateLayout, snap.Date)
		if err != nil {
			t.Fatalf("parse %q: %v", snap.Date, err)
		}
		if norm[day] != snap.NormDailyWorkload {
			t.Errorf("%s: norm got %v, want %v", snap.Date, norm[day], snap.NormDailyWorkload)
		}
		if raw[day] != snap.DailyWorkload {
			t.Errorf("%s: raw got %v, want %v", snap.Date, raw[day], snap.DailyWorkload)
		}
	}
}

func TestWorkload_Idempotent(t *testing.T) {
	snapshots := aprilSnapshots()

	first, err := CalculateACR(snapshots, "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := CalculateACR(snapshots, "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected bit-identical results, got %v then %v", first, second)
	}
}
