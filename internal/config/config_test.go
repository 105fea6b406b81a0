package config

import "testing"

func TestParseURIBareHostPortDefaultsToTelnet(t *testing.T) {
	target, err := ParseURI("thegoodplace.com:12358")
	if err != nil {
		t.Fatal(err)
	}
	if target.Host != "thegoodplace.com" || target.Port != 12358 || target.TLS {
		t.Fatalf("got %+v", target)
	}
}

func TestParseURISSLScheme(t *testing.T) {
	target, err := ParseURI("ssl://thegoodplace.com:12358")
	if err != nil {
		t.Fatal(err)
	}
	if target.Host != "thegoodplace.com" || target.Port != 12358 || !target.TLS {
		t.Fatalf("got %+v", target)
	}
}

func TestParseURITelnetSchemeNoPortDefaults(t *testing.T) {
	target, err := ParseURI("telnet://aardwolf.org")
	if err != nil {
		t.Fatal(err)
	}
	if target.Host != "aardwolf.org" || target.Port != DefaultPort || target.TLS {
		t.Fatalf("got %+v", target)
	}
}

func TestParseURIUnknownSchemeErrors(t *testing.T) {
	if _, err := ParseURI("http://example.com"); err == nil {
		t.Fatal("expected an error for an unsupported scheme")
	}
}

func TestDebugNamespacesSplitsAndTrims(t *testing.T) {
	t.Setenv("DEBUG", "net, matcher ,, triggers")
	got := DebugNamespaces()
	want := []string{"net", "matcher", "triggers"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestDebugNamespacesEmptyWhenUnset(t *testing.T) {
	t.Setenv("DEBUG", "")
	if got := DebugNamespaces(); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}
