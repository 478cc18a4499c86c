package richtext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want Buckets
	}{
		{name: "empty input", in: nil, want: Buckets{}},
		{
			name: "one block per bucket",
			in: []string{
				"## Tecnologías\n- Go",
				"## Seguridad\n- Cifrado",
				"## Beneficios\n- Ahorro",
				"## Características\n- Panel",
				"Un texto libre",
			},
			want: Buckets{
				Technology: []string{"## Tecnologías\n- Go"},
				Security:   []string{"## Seguridad\n- Cifrado"},
				Benefits:   []string{"## Beneficios\n- Ahorro"},
				Features:   []string{"## Características\n- Panel"},
				Other:      []string{"Un texto libre"},
			},
		},
		{
			name: "security wins over later markers",
			in:   []string{"## Tecnologías y beneficios\nLa seguridad es clave"},
			want: Buckets{Security: []string{"## Tecnologías y beneficios\nLa seguridad es clave"}},
		},
		{
			name: "upper case markers",
			in:   []string{"## TECNOLOGÍAS USADAS", "SEGURIDAD"},
			want: Buckets{
				Technology: []string{"## TECNOLOGÍAS USADAS"},
				Security:   []string{"SEGURIDAD"},
			},
		},
		{
			name: "order preserved inside bucket",
			in:   []string{"beneficios uno", "otro", "beneficios dos"},
			want: Buckets{
				Benefits: []string{"beneficios uno", "beneficios dos"},
				Other:    []string{"otro"},
			},
		},
		{
			name: "unaccented feature markers",
			in:   []string{"El sistema incluye reportes", "Modulos disponibles"},
			want: Buckets{Features: []string{"El sistema incluye reportes", "Modulos disponibles"}},
		},
		{
			name: "blank blocks fall back to other",
			in:   []string{"", "   "},
			want: Buckets{Other: []string{"", "   "}},
		},
		{
			name: "blank blocks skipped when something matched",
			in:   []string{"", "seguridad"},
			want: Buckets{Security: []string{"seguridad"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.in)
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("Classify mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCategoryOf(t *testing.T) {
	if got := CategoryOf("Nuestra seguridad y tecnologías"); got != CategorySecurity {
		t.Fatalf("expected security, got %s", got)
	}
	if got := CategoryOf("Sin marcadores"); got != CategoryOther {
		t.Fatalf("expected other, got %s", got)
	}
}
