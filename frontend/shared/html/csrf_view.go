package html

import "fmt"

// CSRFCookieName is the double-submit cookie read by CSRFFormScript.
const CSRFCookieName = "X-CSRF-Token"

// CSRFFormScript copies the CSRF cookie into a hidden _csrf field of every
// POST form and asks for confirmation on forms carrying data-confirm.
func CSRFFormScript() string {
	return fmt.Sprintf(`<script>
(function () {
  function cookie(name) {
    var parts = document.cookie ? document.cookie.split(";") : [];
    for (var i = 0; i < parts.length; i++) {
      var c = parts[i].trim();
      if (c.indexOf(name + "=") === 0) return decodeURIComponent(c.substring(name.length + 1));
    }
    return "";
  }

  function prepare() {
    var token = cookie(%q);
    document.querySelectorAll("form").forEach(function (form) {
      if ((form.getAttribute("method") || "GET").toUpperCase() !== "POST") return;
      if (token && !form.querySelector("input[name='_csrf']")) {
        var input = document.createElement("input");
        input.type = "hidden";
        input.name = "_csrf";
        input.value = token;
        form.appendChild(input);
      }
      var question = form.getAttribute("data-confirm");
      if (question) {
        form.addEventListener("submit", function (e) {
          if (!window.confirm(question)) e.preventDefault();
        });
      }
    });
  }

  if (document.readyState === "loading") {
    document.addEventListener("DOMContentLoaded", prepare);
  } else {
    prepare();
  }
})();
</script>`, CSRFCookieName)
}
