package dsp

import "testing"

func TestDecimateIQ(t *testing.T) {
	samples := []IQ{{I: 1}, {I: 1}, {I: 1}, {I: 3}, {I: 1}, {I: 1}}
	out := DecimateIQ(samples, 3)
	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(out))
	}
	if out[0].I != 3 || out[1].I != 5 {
		t.Fatalf("unexpected sums: %v", out)
	}
}

func TestDecimatePCM(t *testing.T) {
	samples := []int16{2, 4, 6, 8, 10, 12}
	out := DecimatePCM(samples, 3)
	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(out))
	}
	if out[0] != 4 || out[1] != 10 {
		t.Fatalf("unexpected averages: %v", out)
	}
}

func TestPolarDiscriminator_ZeroPhaseShift(t *testing.T) {
	a := IQ{I: 1000, Q: 0}
	pcm := PolarDiscriminator(a, a)
	if pcm != 0 {
		t.Fatalf("expected zero discriminator output for identical samples, got %d", pcm)
	}
}

func TestDemodulator_CarriesPreviousSample(t *testing.T) {
	var d Demodulator
	iq := []IQ{{I: 1000, Q: 0}, {I: 0, Q: 1000}}
	pcm := make([]int16, len(iq))

	d.Demod(pcm, iq)
	if d.previous != iq[1] {
		t.Fatalf("expected previous to carry the last sample")
	}

	pcm2 := make([]int16, 1)
	d.Demod(pcm2, []IQ{{I: 1000, Q: 0}})
	want := PolarDiscriminator(IQ{I: 1000, Q: 0}, iq[1])
	if pcm2[0] != want {
		t.Fatalf("got %d, want %d", pcm2[0], want)
	}
}

func TestPolarRotate90_FourApplicationsAreIdentity(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	orig := append([]byte{}, data...)

	PolarRotate90(data)
	PolarRotate90(data)
	PolarRotate90(data)
	PolarRotate90(data)

	for i := range data {
		if data[i] != orig[i] {
			t.Fatalf("four 90-degree rotations should be an identity, got %v want %v", data, orig)
		}
	}
}
