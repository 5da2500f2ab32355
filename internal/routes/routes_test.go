package routes

import "testing"

func TestResolve(t *testing.T) {
	testCases := []struct {
		name       string
		path       string
		wantName   string
		wantOK     bool
		wantParams map[string]string
	}{
		{"root", "/", "home", true, nil},
		{"static page", "/pricing", "pricing", true, nil},
		{"trailing slash", "/about/", "about", true, nil},
		{"param route", "/profile/russ", "profile", true, map[string]string{"handle": "russ"}},
		{"nested admin", "/admin/briefs/b-123", "admin-brief-detail", true, map[string]string{"id": "b-123"}},
		{"unknown path", "/nope", "", false, nil},
		{"partial prefix does not match", "/admin/briefs/b-123/extra", "", false, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			match, ok := Resolve(tc.path)
			if ok != tc.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tc.path, ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if match.Route.Name != tc.wantName {
				t.Errorf("Resolve(%q) name = %q, want %q", tc.path, match.Route.Name, tc.wantName)
			}
			for k, want := range tc.wantParams {
				if got := match.Params[k]; got != want {
					t.Errorf("Resolve(%q) param %q = %q, want %q", tc.path, k, got, want)
				}
			}
		})
	}
}

func TestGuard_AdminBlockedWithoutSession(t *testing.T) {
	noSession := func() bool { return false }

	match, decision := Guard("/admin", noSession)
	if decision != Redirect {
		t.Fatalf("Guard(/admin, no session) = %v, want Redirect", decision)
	}
	if match.Route.Name != "admin-dashboard" {
		t.Errorf("Guard(/admin) matched %q, want admin-dashboard", match.Route.Name)
	}
}

func TestGuard_AdminAllowedWithSession(t *testing.T) {
	withSession := func() bool { return true }

	_, decision := Guard("/admin", withSession)
	if decision != Allow {
		t.Errorf("Guard(/admin, session) = %v, want Allow", decision)
	}
}

func TestGuard_PublicRouteIgnoresSession(t *testing.T) {
	noSession := func() bool { return false }

	_, decision := Guard("/pricing", noSession)
	if decision != Allow {
		t.Errorf("Guard(/pricing, no session) = %v, want Allow", decision)
	}
}

func TestGuard_UnknownPathIsNotFound(t *testing.T) {
	_, decision := Guard("/does/not/exist", func() bool { return true })
	if decision != NotFound {
		t.Errorf("Guard(unknown) = %v, want NotFound", decision)
	}
}
