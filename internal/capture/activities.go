package capture

import "github.com/iammorganparry/rewind/internal/models"

// activities are the canned captures the simulated feed draws from.
var activities = []models.AddRequest{
	{
		Type:    models.EntryTypeClipboard,
		Title:   "API Documentation Copied",
		Content: `fetch("/api/users", { method: "GET", headers: { "Authorization": "Bearer token" } })`,
		Context: "Copied from Stack Overflow",
	},
	{
		Type:     models.EntryTypeFile,
		Title:    "Modified: UserService.js",
		Content:  "export class UserService {\n  async getUsers() {\n    return await fetch(\"/api/users\");\n  }\n}",
		FilePath: "/src/services/UserService.js",
		Language: "javascript",
	},
	{
		Type:     models.EntryTypeScreenshot,
		Title:    "Error Dialog Captured",
		Content:  `TypeError: Cannot read property "map" of undefined at UserList.render`,
		ImageURL: "https://images.pexels.com/photos/1181263/pexels-photo-1181263.jpeg?auto=compress&cs=tinysrgb&w=400",
	},
	{
		Type:     models.EntryTypeCode,
		Title:    "React Hook Implementation",
		Content:  "const useLocalStorage = (key, initialValue) => {\n  const [value, setValue] = useState(() => {\n    return localStorage.getItem(key) || initialValue;\n  });\n  return [value, setValue];\n};",
		Language: "javascript",
		Tags:     "react, hooks, localStorage",
	},
	{
		Type:    models.EntryTypeNote,
		Title:   "Meeting Notes: Sprint Planning",
		Content: "- Implement user authentication\n- Fix responsive design issues\n- Add dark mode toggle\n- Performance optimization",
		Tags:    "meeting, sprint, planning",
	},
}
