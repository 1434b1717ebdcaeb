package app

import "testing"

func TestParseCallbackPrefixedTags(t *testing.T) {
	cases := []struct {
		data  string
		kind  callbackKind
		value string
	}{
		{"gender_male", cbGender, "male"},
		{"prov_تهران", cbProvince, "تهران"},
		{"city_ورامین", cbCity, "ورامین"},
		{"complete_phone", cbComplete, "phone"},
		{"school_مدرسه فرهنگ", cbSchool, "مدرسه فرهنگ"},
		{"aprov_البرز", cbAdminProvince, "البرز"},
		{"acity_کرج", cbAdminCity, "کرج"},
	}
	for _, tc := range cases {
		cb, ok := parseCallback(tc.data)
		if !ok {
			t.Fatalf("parseCallback(%q) not recognized", tc.data)
		}
		if cb.Kind != tc.kind || cb.Value != tc.value {
			t.Fatalf("parseCallback(%q) = %+v", tc.data, cb)
		}
	}
}

func TestParseCallbackPromoteChatCarriesChatID(t *testing.T) {
	cb, ok := parseCallback("promo_chat_-1001234")
	if !ok || cb.Kind != cbPromoteChat || cb.ChatID != -1001234 {
		t.Fatalf("parseCallback = %+v ok=%v", cb, ok)
	}

	if _, ok := parseCallback("promo_chat_abc"); ok {
		t.Fatal("non-numeric chat id must not parse")
	}
}

func TestParseCallbackRejectsUnknownAndEmptyPayloads(t *testing.T) {
	for _, data := range []string{"", "gender_", "prov_", "bogus", "city"} {
		if _, ok := parseCallback(data); ok {
			t.Fatalf("parseCallback(%q) should not parse", data)
		}
	}
}

func TestParseCallbackBareTags(t *testing.T) {
	cases := map[string]callbackKind{
		"check_join_again":    cbCheckJoinAgain,
		"main_profile":        cbShowProfile,
		"main_coins":          cbShowCoins,
		"back_to_main_menu":   cbShowMainMenu,
		"main_anonymous_chat": cbComingSoon,
		"admin_panel":         cbAdminPanel,
		"admin_channels":      cbAdminChannels,
		"admin_schools":       cbAdminSchools,
		"chadd_confirm":       cbChannelConfirm,
		"chadd_cancel":        cbChannelCancel,
		"schools_done":        cbSchoolsDone,
		"schools_cancel":      cbSchoolsCancel,
	}
	for data, kind := range cases {
		cb, ok := parseCallback(data)
		if !ok || cb.Kind != kind {
			t.Fatalf("parseCallback(%q) = %+v ok=%v", data, cb, ok)
		}
	}
}
