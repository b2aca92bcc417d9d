package prompts

const reactBoilerplate = `Project Files:
The following is a list of all project files and their complete contents that are currently visible and accessible to you.

package.json:
{
  "name": "vite-react-typescript-starter",
  "private": true,
  "version": "0.0.0",
  "type": "module",
  "scripts": {
    "dev": "vite",
    "build": "vite build",
    "preview": "vite preview"
  },
  "dependencies": {
    "lucide-react": "^0.344.0",
    "react": "^18.3.1",
    "react-dom": "^18.3.1"
  },
  "devDependencies": {
    "@vitejs/plugin-react": "^4.3.1",
    "autoprefixer": "^10.4.18",
    "postcss": "^8.4.35",
    "tailwindcss": "^3.4.1",
    "typescript": "^5.5.3",
    "vite": "^5.4.2"
  }
}

index.html:
<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>Vite + React + TS</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.tsx"></script>
  </body>
</html>

src/main.tsx:
import { StrictMode } from 'react';
import { createRoot } from 'react-dom/client';
import App from './App.tsx';
import './index.css';

createRoot(document.getElementById('root')!).render(
  <StrictMode>
    <App />
  </StrictMode>
);

src/App.tsx:
function App() {
  return (
    <div className="min-h-screen bg-gray-100 flex items-center justify-center">
      <p>Start prompting (or editing) to see magic happen :)</p>
    </div>
  );
}

export default App;

src/index.css:
@tailwind base;
@tailwind components;
@tailwind utilities;

Here is a list of files that exist on the file system but are not being shown to you:

  - tailwind.config.js
  - postcss.config.js
  - tsconfig.json
  - vite.config.ts`

const nextBoilerplate = `Project Files:
The following is a list of all project files and their complete contents that are currently visible and accessible to you.

package.json:
{
  "name": "nextjs-starter",
  "version": "0.1.0",
  "private": true,
  "scripts": {
    "dev": "next dev",
    "build": "next build",
    "start": "next start",
    "lint": "next lint"
  },
  "dependencies": {
    "lucide-react": "^0.344.0",
    "next": "14.2.5",
    "react": "^18.3.1",
    "react-dom": "^18.3.1"
  },
  "devDependencies": {
    "@types/node": "^20",
    "@types/react": "^18",
    "@types/react-dom": "^18",
    "autoprefixer": "^10.4.18",
    "postcss": "^8.4.35",
    "tailwindcss": "^3.4.1",
    "typescript": "^5.5.3"
  }
}

app/layout.tsx:
import './globals.css';
import type { Metadata } from 'next';

export const metadata: Metadata = {
  title: 'Next.js Starter',
  description: 'Generated by BuildX',
};

export default function RootLayout({ children }: { children: React.ReactNode }) {
  return (
    <html lang="en">
      <body>{children}</body>
    </html>
  );
}

app/page.tsx:
export default function Home() {
  return (
    <main className="min-h-screen flex items-center justify-center">
      <p>Start prompting (or editing) to see magic happen :)</p>
    </main>
  );
}

app/globals.css:
@tailwind base;
@tailwind components;
@tailwind utilities;

Here is a list of files that exist on the file system but are not being shown to you:

  - next.config.mjs
  - tailwind.config.ts
  - postcss.config.mjs
  - tsconfig.json`

const manimBoilerplate = `Project Files:
The following is a list of all project files and their complete contents that are currently visible and accessible to you.

requirements.txt:
manim==0.18.1

main.py:
from manim import *


class MainScene(Scene):
    def construct(self):
        title = Text("Start prompting to see magic happen :)")
        self.play(Write(title))
        self.wait(1)`

const nodeBoilerplate = `Project Files:
The following is a list of all project files and their complete contents that are currently visible and accessible to you.

package.json:
{
  "name": "node-starter",
  "version": "1.0.0",
  "private": true,
  "type": "module",
  "main": "index.js",
  "scripts": {
    "start": "node index.js"
  }
}

index.js:
console.log("Start prompting (or editing) to see magic happen :)");`
